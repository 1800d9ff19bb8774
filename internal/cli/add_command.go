package cli

import (
	"context"
	"fmt"
	"strings"

	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
)

// AddOptions holds the flags of the add command
type AddOptions struct {
	Description string
	Priority    string
	Status      string
	Due         string
	Categories  []string
}

// AddCommand handles the add command
type AddCommand struct {
	app  *App
	opts AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{app: app, opts: opts}
}

// Execute creates a todo titled by args
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.load(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("add todo", err)
	}

	input := domain.NewTodo{
		Title:       strings.Join(args, " "),
		Description: c.opts.Description,
		UserID:      user.ID,
		DueDate:     c.opts.Due,
		CategoryIDs: []string{},
	}
	if c.opts.Priority != "" {
		if input.Priority, err = domain.ParsePriority(c.opts.Priority); err != nil {
			return c.app.errorHandler.Handle("add todo", errors.NewInvalidInputError("priority", c.opts.Priority, err.Error()))
		}
	}
	if c.opts.Status != "" {
		if input.Status, err = domain.ParseStatus(c.opts.Status); err != nil {
			return c.app.errorHandler.Handle("add todo", errors.NewInvalidInputError("status", c.opts.Status, err.Error()))
		}
	}
	st := c.app.tasks.Snapshot()
	for _, ref := range c.opts.Categories {
		category, err := resolveCategory(st, ref)
		if err != nil {
			return c.app.errorHandler.Handle("add todo", err)
		}
		input.CategoryIDs = append(input.CategoryIDs, category.ID)
	}

	todo, err := c.app.tasks.AddTodo(input)
	if err != nil {
		return c.app.errorHandler.Handle("add todo", err)
	}
	c.app.tasks.Wait()

	fmt.Fprintf(c.app.out, "Added todo %s: %s\n", shortID(todo.ID), todo.Title)
	return nil
}
