package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"taskmaster/internal/config"
	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
	"taskmaster/internal/logging"
	"taskmaster/internal/remote"
	"taskmaster/internal/session"
	"taskmaster/internal/store"
)

// App bundles what command handlers need
type App struct {
	config       *config.Config
	session      *session.Store
	tasks        *store.Store
	out          io.Writer
	logger       *log.Logger
	errorHandler *ErrorHandler
}

// NewApp creates a CLI application from already built dependencies
func NewApp(cfg *config.Config, sess *session.Store, tasks *store.Store, out io.Writer, logger *log.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		config:       cfg,
		session:      sess,
		tasks:        tasks,
		out:          out,
		logger:       logger,
		errorHandler: NewErrorHandler(logger),
	}
}

// AppFactory builds the App once configuration is final. The returned func
// releases what the App holds.
type AppFactory func(cfg *config.Config, out, errOut io.Writer) (*App, func(), error)

// NewAppFromConfig is the production AppFactory: file-backed session and an
// HTTP remote. Logs go to errOut.
func NewAppFromConfig(cfg *config.Config, out, errOut io.Writer) (*App, func(), error) {
	level := cfg.Logging.Level
	if cfg.Application.Verbose {
		level = "info"
	}
	logger := logging.New(errOut, logging.Options{Level: level, Format: cfg.Logging.Format})

	sess, err := session.Open(session.NewFileStorage(cfg.GetSessionPath()), logger)
	if err != nil {
		return nil, nil, err
	}

	client := remote.NewHTTPClient(cfg.Remote.BaseURL, cfg.Remote.RequestTimeout)
	tasks := store.New(client, store.Options{
		Logger:               logger,
		DefaultCategoryColor: cfg.Display.DefaultCategoryColor,
	})
	logging.Debugf("remote %s, session %s", client.BaseURL(), cfg.GetSessionPath())

	return NewApp(cfg, sess, tasks, out, logger), tasks.Close, nil
}

// load requires a session and pulls the server's collections into the store
func (a *App) load(ctx context.Context) (domain.User, error) {
	user, err := a.session.RequireUser()
	if err != nil {
		return domain.User{}, err
	}
	if err := a.tasks.FetchData(ctx); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// resolveTodo finds a todo by full id or unique id prefix
func resolveTodo(st store.State, ref string) (domain.Todo, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Todo{}, errors.NewInvalidInputError("id", ref, "a todo id is required")
	}
	if t, ok := st.Todo(ref); ok {
		return t, nil
	}
	var matches []domain.Todo
	for _, t := range st.Todos {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Todo{}, errors.NewNotFoundError("todo", ref)
	case 1:
		return matches[0], nil
	}
	return domain.Todo{}, errors.NewInvalidInputError("id", ref, "matches more than one todo")
}

// resolveCategory finds a category by full id, unique id prefix or
// case-insensitive name
func resolveCategory(st store.State, ref string) (domain.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Category{}, errors.NewInvalidInputError("category", ref, "a category is required")
	}
	if c, ok := st.Category(ref); ok {
		return c, nil
	}
	var matches []domain.Category
	for _, c := range st.Categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Category{}, errors.NewNotFoundError("category", ref)
	case 1:
		return matches[0], nil
	}
	return domain.Category{}, errors.NewInvalidInputError("category", ref, "matches more than one category")
}

// resolveSubtask finds a subtask by id, 1-based position or unique id prefix
func resolveSubtask(todo domain.Todo, ref string) (domain.Subtask, error) {
	ref = strings.TrimSpace(ref)
	for _, s := range todo.Subtasks {
		if s.ID == ref {
			return s, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(todo.Subtasks) {
		return todo.Subtasks[n-1], nil
	}
	var matches []domain.Subtask
	for _, s := range todo.Subtasks {
		if ref != "" && strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Subtask{}, errors.NewNotFoundError("subtask", ref)
	case 1:
		return matches[0], nil
	}
	return domain.Subtask{}, errors.NewInvalidInputError("subtask", ref, "matches more than one subtask")
}
