package cli

import (
	"context"
	"fmt"
	"strings"

	"taskmaster/internal/errors"
)

// CategoryCommand handles the category add, rm and list commands
type CategoryCommand struct {
	app *App
}

// NewCategoryCommand creates a new category command handler
func NewCategoryCommand(app *App) *CategoryCommand {
	return &CategoryCommand{app: app}
}

// Add creates a category named args. An empty color gets the configured default.
func (c *CategoryCommand) Add(ctx context.Context, args []string, color string) error {
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("add category", err)
	}

	category, err := c.app.tasks.AddCategory(strings.Join(args, " "), color)
	if err != nil {
		return c.app.errorHandler.Handle("add category", err)
	}
	c.app.tasks.Wait()

	fmt.Fprintf(c.app.out, "Added category %s: %s\n", shortID(category.ID), category.Name)
	return nil
}

// Remove deletes category args[0]. Todos in it are kept.
func (c *CategoryCommand) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "category rm", "usage: tm category rm <id or name>")
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("delete category", err)
	}
	category, err := resolveCategory(c.app.tasks.Snapshot(), args[0])
	if err != nil {
		return c.app.errorHandler.Handle("delete category", err)
	}

	c.app.tasks.DeleteCategory(category.ID)
	c.app.tasks.Wait()

	fmt.Fprintf(c.app.out, "Deleted category %s: %s\n", shortID(category.ID), category.Name)
	return nil
}

// List prints every category in order
func (c *CategoryCommand) List(ctx context.Context, formatName string) error {
	if formatName == "" {
		formatName = c.app.config.Display.ListDefaultFormat
	}
	format, err := parseFormat(formatName)
	if err != nil {
		return c.app.errorHandler.Handle("list categories", err)
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("list categories", err)
	}

	categories := c.app.tasks.Snapshot().Categories
	if format != FormatTable {
		return writeStructured(c.app.out, format, categories)
	}
	if len(categories) == 0 {
		fmt.Fprintln(c.app.out, "No categories found")
		return nil
	}
	return writeCategoryTable(c.app.out, categories)
}

// Categorize replaces the categories of todo args[0] with args[1:].
// No categories clears the set.
func (c *CategoryCommand) Categorize(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "categorize", "usage: tm categorize <todo> [category...]")
	}
	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("categorize todo", err)
	}
	st := c.app.tasks.Snapshot()
	todo, err := resolveTodo(st, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("categorize todo", err)
	}
	ids := make([]string, 0, len(args)-1)
	names := make([]string, 0, len(args)-1)
	for _, ref := range args[1:] {
		category, err := resolveCategory(st, ref)
		if err != nil {
			return c.app.errorHandler.Handle("categorize todo", err)
		}
		ids = append(ids, category.ID)
		names = append(names, category.Name)
	}

	c.app.tasks.SetTodoCategories(todo.ID, ids)
	c.app.tasks.Wait()

	if len(names) == 0 {
		fmt.Fprintf(c.app.out, "Cleared categories of %s: %s\n", shortID(todo.ID), todo.Title)
		return nil
	}
	fmt.Fprintf(c.app.out, "Set categories of %s to %s\n", shortID(todo.ID), strings.Join(names, ", "))
	return nil
}
