package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"taskmaster/internal/domain"
	apperrors "taskmaster/internal/errors"
	"taskmaster/internal/logging"
	"taskmaster/internal/remote"
	"taskmaster/internal/validation"
	"taskmaster/internal/view"
)

// Options customizes a Store. Zero fields fall back to defaults.
type Options struct {
	Logger *log.Logger
	// Now stamps createdAt on new todos.
	Now func() time.Time
	// NewID generates todo, subtask and category ids.
	NewID func() string
	// DefaultCategoryColor is used by AddCategory when no color is given.
	DefaultCategoryColor string
}

// Store is the single owner of client-side task state.
// Safe for concurrent use.
type Store struct {
	remote       remote.Remote
	logger       *log.Logger
	now          func() time.Time
	newID        func() string
	defaultColor string
	todoCheck    *validation.TodoValidator
	catCheck     *validation.CategoryValidator

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int

	// effect queue, drained in order by a single worker
	queue    []effect
	inflight int
	idle     *sync.Cond
	wake     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a store backed by r and starts its effect worker.
// Call Close to stop the worker.
func New(r remote.Remote, opts Options) *Store {
	s := &Store{
		remote:       r,
		logger:       opts.Logger,
		now:          opts.Now,
		newID:        opts.NewID,
		defaultColor: opts.DefaultCategoryColor,
		todoCheck:    validation.NewTodoValidator(),
		catCheck:     validation.NewCategoryValidator(),
		state:        initialState(),
		subs:         make(map[int]func(State)),
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = domain.NewID
	}
	if s.defaultColor == "" {
		s.defaultColor = domain.DefaultCategoryColor
	}
	s.idle = sync.NewCond(&s.mu)
	s.ctx, s.cancel = context.WithCancel(context.Background())

	go s.run()
	return s
}

// Close waits for queued effects and stops the worker.
func (s *Store) Close() {
	s.Wait()
	s.cancel()
	<-s.done
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Visible runs the current state through the filter, sort and group pipeline.
func (s *Store) Visible() view.Result {
	st := s.Snapshot()
	return view.Apply(st.Todos, st.Categories, st.View)
}

// Subscribe registers fn to receive a snapshot after every commit.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// update commits the result of a transition and notifies subscribers
// outside the lock.
func (s *Store) update(transition func(State) State) {
	s.mu.Lock()
	s.state = transition(s.state)
	snapshot := s.state.Clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// FetchData replaces todos and categories with the server's collections.
// On failure the previous collections are kept and the error is returned.
func (s *Store) FetchData(ctx context.Context) error {
	s.update(func(st State) State { return setLoading(st, true) })

	todos, categories, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("fetch failed", "err", err)
		s.update(func(st State) State { return setLoading(st, false) })
		return err
	}

	s.update(func(st State) State {
		return setLoading(replaceData(st, todos, categories), false)
	})
	return nil
}

func (s *Store) fetch(ctx context.Context) ([]domain.Todo, []domain.Category, error) {
	todos, err := s.remote.ListTodos(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.remote.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return todos, categories, nil
}

// AddTodo creates a todo with a fresh id and creation time and prepends it.
// Invalid input is rejected before anything is applied.
func (s *Store) AddTodo(input domain.NewTodo) (domain.Todo, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := s.todoCheck.ValidateNewTodo(input); err != nil {
		return domain.Todo{}, validation.AsAppError(err)
	}
	due, err := domain.NormalizeDueDate(input.DueDate)
	if err != nil {
		return domain.Todo{}, apperrors.NewInvalidInputError("dueDate", input.DueDate, err.Error())
	}

	todo := domain.Todo{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		CreatedAt:   s.now().UTC(),
		UserID:      input.UserID,
		DueDate:     due,
		CategoryIDs: append([]string{}, input.CategoryIDs...),
		Subtasks:    []domain.Subtask{},
	}
	if todo.Status == "" {
		todo.Status = domain.StatusPending
	}
	if todo.Priority == "" {
		todo.Priority = domain.PriorityMedium
	}

	s.update(func(st State) State { return addTodo(st, todo) })
	s.enqueue(step{action: "create todo", id: todo.ID, run: func(ctx context.Context) error {
		return s.remote.CreateTodo(ctx, todo)
	}})
	return todo.Clone(), nil
}

// ToggleStatus sets the status of a todo. Unknown ids are ignored.
func (s *Store) ToggleStatus(id string, status domain.Status) bool {
	return s.mutateTodo("update status", id, func(st State) (State, domain.Todo, bool) {
		return toggleStatus(st, id, status)
	})
}

// UpdateTodo edits title, description, priority or due date.
func (s *Store) UpdateTodo(id string, patch TodoPatch) (bool, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := s.todoCheck.ValidateTitle("title", title); err != nil {
			return false, validation.AsAppError(err)
		}
		patch.Title = &title
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return false, apperrors.NewInvalidInputError("priority", *patch.Priority, "must be LOW, MEDIUM or HIGH")
	}
	var due *time.Time
	if patch.DueDate != nil {
		var err error
		if due, err = domain.NormalizeDueDate(*patch.DueDate); err != nil {
			return false, apperrors.NewInvalidInputError("dueDate", *patch.DueDate, err.Error())
		}
	}
	return s.mutateTodo("update todo", id, func(st State) (State, domain.Todo, bool) {
		return patchTodo(st, id, patch, due)
	}), nil
}

// SetTodoCategories replaces the category set of a todo.
func (s *Store) SetTodoCategories(id string, categoryIDs []string) bool {
	return s.mutateTodo("set categories", id, func(st State) (State, domain.Todo, bool) {
		return setTodoCategories(st, id, categoryIDs)
	})
}

// DeleteTodo removes a todo. Unknown ids are ignored.
func (s *Store) DeleteTodo(id string) bool {
	applied := false
	s.update(func(st State) State {
		next, ok := deleteTodo(st, id)
		applied = ok
		return next
	})
	if !applied {
		return false
	}
	s.enqueue(step{action: "delete todo", id: id, run: func(ctx context.Context) error {
		return s.remote.DeleteTodo(ctx, id)
	}})
	return true
}

// AddSubtask appends a subtask to a todo and sends the whole todo.
func (s *Store) AddSubtask(todoID, title string) (domain.Subtask, bool, error) {
	title = strings.TrimSpace(title)
	if err := s.todoCheck.ValidateTitle("subtask", title); err != nil {
		return domain.Subtask{}, false, validation.AsAppError(err)
	}
	subtask := domain.Subtask{ID: s.newID(), Title: title}
	ok := s.mutateTodo("add subtask", todoID, func(st State) (State, domain.Todo, bool) {
		return addSubtask(st, todoID, subtask)
	})
	return subtask, ok, nil
}

// ToggleSubtask flips the completion of a subtask.
func (s *Store) ToggleSubtask(todoID, subtaskID string) bool {
	return s.mutateTodo("toggle subtask", todoID, func(st State) (State, domain.Todo, bool) {
		return toggleSubtask(st, todoID, subtaskID)
	})
}

// DeleteSubtask removes a subtask.
func (s *Store) DeleteSubtask(todoID, subtaskID string) bool {
	return s.mutateTodo("delete subtask", todoID, func(st State) (State, domain.Todo, bool) {
		return deleteSubtask(st, todoID, subtaskID)
	})
}

// mutateTodo commits a single-todo transition and, if it applied, queues a
// PUT of the full updated todo.
func (s *Store) mutateTodo(action, id string, transition func(State) (State, domain.Todo, bool)) bool {
	var (
		updated domain.Todo
		applied bool
	)
	s.update(func(st State) State {
		next, todo, ok := transition(st)
		updated, applied = todo, ok
		return next
	})
	if !applied {
		return false
	}
	s.enqueue(step{action: action, id: id, run: func(ctx context.Context) error {
		return s.remote.UpdateTodo(ctx, updated)
	}})
	return true
}

// AddCategory appends a category. An empty color gets the default.
func (s *Store) AddCategory(name, color string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := s.catCheck.ValidateName(name); err != nil {
		return domain.Category{}, validation.AsAppError(err)
	}
	if strings.TrimSpace(color) == "" {
		color = s.defaultColor
	}
	category := domain.Category{ID: s.newID(), Name: name, Color: color}

	s.update(func(st State) State { return addCategory(st, category) })
	s.enqueue(step{action: "create category", id: category.ID, run: func(ctx context.Context) error {
		return s.remote.CreateCategory(ctx, category)
	}})
	return category, nil
}

// DeleteCategory removes a category and strips it from every todo.
func (s *Store) DeleteCategory(id string) bool {
	applied := false
	s.update(func(st State) State {
		next, ok := deleteCategory(st, id)
		applied = ok
		return next
	})
	if !applied {
		return false
	}
	s.enqueue(step{action: "delete category", id: id, run: func(ctx context.Context) error {
		return s.remote.DeleteCategory(ctx, id)
	}})
	return true
}

// ClearCompleted removes every completed todo at once, then deletes them on
// the server one at a time in list order. Every delete is attempted; a
// single reconciliation follows if any of them failed.
func (s *Store) ClearCompleted() []string {
	var removed []string
	s.update(func(st State) State {
		next, ids := clearCompleted(st)
		removed = ids
		return next
	})
	if len(removed) == 0 {
		return nil
	}

	steps := make([]step, len(removed))
	for i, id := range removed {
		steps[i] = step{action: "delete todo", id: id, run: func(ctx context.Context) error {
			return s.remote.DeleteTodo(ctx, id)
		}}
	}
	s.enqueue(steps...)
	return removed
}

// SetFilter changes which statuses are visible.
func (s *Store) SetFilter(f domain.Filter) {
	s.update(func(st State) State { return setFilter(st, f) })
}

// SetSortBy changes the ordering of visible todos.
func (s *Store) SetSortBy(k domain.SortKey) {
	s.update(func(st State) State { return setSortBy(st, k) })
}

// ToggleGroupBy switches grouping by category on or off.
func (s *Store) ToggleGroupBy() {
	s.update(toggleGroupBy)
}
