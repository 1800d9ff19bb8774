package cli

import (
	"context"
	"fmt"
	"strings"

	"taskmaster/internal/errors"
)

// SubtaskCommand handles the subtask add, toggle and rm commands
type SubtaskCommand struct {
	app *App
}

// NewSubtaskCommand creates a new subtask command handler
func NewSubtaskCommand(app *App) *SubtaskCommand {
	return &SubtaskCommand{app: app}
}

// Add appends a subtask titled args[1:] to todo args[0]
func (c *SubtaskCommand) Add(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "subtask add", "usage: tm subtask add <todo> <title>")
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("add subtask", err)
	}
	todo, err := resolveTodo(c.app.tasks.Snapshot(), args[0])
	if err != nil {
		return c.app.errorHandler.Handle("add subtask", err)
	}

	subtask, _, err := c.app.tasks.AddSubtask(todo.ID, strings.Join(args[1:], " "))
	if err != nil {
		return c.app.errorHandler.Handle("add subtask", err)
	}
	c.app.tasks.Wait()

	fmt.Fprintf(c.app.out, "Added subtask %s to %s: %s\n", shortID(subtask.ID), shortID(todo.ID), subtask.Title)
	return nil
}

// Toggle flips subtask args[1] of todo args[0]
func (c *SubtaskCommand) Toggle(ctx context.Context, args []string) error {
	return c.withSubtask(ctx, "toggle subtask", args, func(todoID, subtaskID string) string {
		c.app.tasks.ToggleSubtask(todoID, subtaskID)
		return "Toggled"
	})
}

// Remove deletes subtask args[1] of todo args[0]
func (c *SubtaskCommand) Remove(ctx context.Context, args []string) error {
	return c.withSubtask(ctx, "delete subtask", args, func(todoID, subtaskID string) string {
		c.app.tasks.DeleteSubtask(todoID, subtaskID)
		return "Deleted"
	})
}

func (c *SubtaskCommand) withSubtask(ctx context.Context, operation string, args []string, fn func(todoID, subtaskID string) string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", operation, "usage: tm subtask <toggle|rm> <todo> <subtask id or number>")
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}
	todo, err := resolveTodo(c.app.tasks.Snapshot(), args[0])
	if err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}
	subtask, err := resolveSubtask(todo, args[1])
	if err != nil {
		return c.app.errorHandler.Handle(operation, err)
	}

	verb := fn(todo.ID, subtask.ID)
	c.app.tasks.Wait()

	fmt.Fprintf(c.app.out, "%s subtask %s: %s\n", verb, shortID(subtask.ID), subtask.Title)
	return nil
}
