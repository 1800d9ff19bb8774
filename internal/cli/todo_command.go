package cli

import (
	"context"
	"fmt"

	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
	"taskmaster/internal/store"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app *App
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app}
}

// Execute sets the status of todo args[0] to args[1]
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "status", "usage: tm status <id> <pending|in-progress|completed>")
	}
	status, err := domain.ParseStatus(args[1])
	if err != nil {
		return c.app.errorHandler.Handle("update status", errors.NewInvalidInputError("status", args[1], err.Error()))
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("update status", err)
	}
	todo, err := resolveTodo(c.app.tasks.Snapshot(), args[0])
	if err != nil {
		return c.app.errorHandler.Handle("update status", err)
	}

	c.app.tasks.ToggleStatus(todo.ID, status)
	c.app.tasks.Wait()

	fmt.Fprintf(c.app.out, "Marked %s as %s: %s\n", shortID(todo.ID), status, todo.Title)
	return nil
}

// EditCommand handles the edit command. Only fields whose flag was given
// are changed.
type EditCommand struct {
	app   *App
	patch store.TodoPatch
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, patch store.TodoPatch) *EditCommand {
	return &EditCommand{app: app, patch: patch}
}

// Execute edits todo args[0]
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: tm edit <id> [--title --description --priority --due]")
	}
	if c.patch == (store.TodoPatch{}) {
		return errors.NewInvalidInputError("command", "edit", "nothing to change")
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("edit todo", err)
	}
	todo, err := resolveTodo(c.app.tasks.Snapshot(), args[0])
	if err != nil {
		return c.app.errorHandler.Handle("edit todo", err)
	}

	if _, err := c.app.tasks.UpdateTodo(todo.ID, c.patch); err != nil {
		return c.app.errorHandler.Handle("edit todo", err)
	}
	c.app.tasks.Wait()

	updated, _ := c.app.tasks.Snapshot().Todo(todo.ID)
	fmt.Fprintf(c.app.out, "Updated todo %s: %s\n", shortID(todo.ID), updated.Title)
	return nil
}

// ShowCommand handles the show command
type ShowCommand struct {
	app    *App
	format string
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App, format string) *ShowCommand {
	return &ShowCommand{app: app, format: format}
}

// Execute prints one todo with its subtasks
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: tm show <id>")
	}
	format, err := parseFormat(c.format)
	if err != nil {
		return c.app.errorHandler.Handle("show todo", err)
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("show todo", err)
	}
	st := c.app.tasks.Snapshot()
	todo, err := resolveTodo(st, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("show todo", err)
	}

	if format != FormatTable {
		return writeStructured(c.app.out, format, todo)
	}
	if err := newTodoTable(c.app.config.Display.TimeFormat, st.Categories).write(c.app.out, []domain.Todo{todo}); err != nil {
		return err
	}
	if todo.Description != "" {
		fmt.Fprintf(c.app.out, "\n%s\n", todo.Description)
	}
	if len(todo.Subtasks) > 0 {
		fmt.Fprintln(c.app.out, "\nSubtasks:")
		writeSubtasks(c.app.out, todo)
	}
	return nil
}

// RemoveCommand handles the rm command
type RemoveCommand struct {
	app *App
}

// NewRemoveCommand creates a new rm command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{app: app}
}

// Execute deletes every todo named in args
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "rm", "usage: tm rm <id>...")
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("delete todo", err)
	}
	st := c.app.tasks.Snapshot()
	todos := make([]domain.Todo, 0, len(args))
	for _, ref := range args {
		todo, err := resolveTodo(st, ref)
		if err != nil {
			return c.app.errorHandler.Handle("delete todo", err)
		}
		todos = append(todos, todo)
	}

	for _, todo := range todos {
		if c.app.tasks.DeleteTodo(todo.ID) {
			fmt.Fprintf(c.app.out, "Deleted todo %s: %s\n", shortID(todo.ID), todo.Title)
		}
	}
	c.app.tasks.Wait()
	return nil
}

// ClearCompletedCommand handles the clear-completed command
type ClearCompletedCommand struct {
	app *App
}

// NewClearCompletedCommand creates a new clear-completed command handler
func NewClearCompletedCommand(app *App) *ClearCompletedCommand {
	return &ClearCompletedCommand{app: app}
}

// Execute removes every completed todo
func (c *ClearCompletedCommand) Execute(ctx context.Context, args []string) error {
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("clear completed todos", err)
	}

	removed := c.app.tasks.ClearCompleted()
	c.app.tasks.Wait()

	if len(removed) == 0 {
		fmt.Fprintln(c.app.out, "No completed todos to clear")
		return nil
	}
	fmt.Fprintf(c.app.out, "Cleared %d completed todo(s)\n", len(removed))
	return nil
}
