package cli

import (
	"context"
	"fmt"

	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
	"taskmaster/internal/view"
)

// ListOptions holds the flags of the list command
type ListOptions struct {
	Filter string
	SortBy string
	Group  bool
	Format string
}

// ListCommand handles the list command
type ListCommand struct {
	app  *App
	opts ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{app: app, opts: opts}
}

// Execute prints the visible todos
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	filter, err := domain.ParseFilter(c.opts.Filter)
	if err != nil {
		return c.app.errorHandler.Handle("list todos", errors.NewInvalidInputError("filter", c.opts.Filter, err.Error()))
	}
	sortKey, err := domain.ParseSortKey(c.opts.SortBy)
	if err != nil {
		return c.app.errorHandler.Handle("list todos", errors.NewInvalidInputError("sort", c.opts.SortBy, err.Error()))
	}
	formatName := c.opts.Format
	if formatName == "" {
		formatName = c.app.config.Display.ListDefaultFormat
	}
	format, err := parseFormat(formatName)
	if err != nil {
		return c.app.errorHandler.Handle("list todos", err)
	}

	if _, err := c.app.load(ctx); err != nil {
		return c.app.errorHandler.Handle("list todos", err)
	}

	c.app.tasks.SetFilter(filter)
	c.app.tasks.SetSortBy(sortKey)
	if c.app.tasks.Snapshot().View.GroupByCategory != c.opts.Group {
		c.app.tasks.ToggleGroupBy()
	}

	st := c.app.tasks.Snapshot()
	result := view.Apply(st.Todos, st.Categories, st.View)
	counts := view.Count(st.Todos)

	if format != FormatTable {
		return writeStructured(c.app.out, format, newListing(st.View, result, counts))
	}

	if len(result.Todos) == 0 {
		fmt.Fprintln(c.app.out, "No todos found")
		fmt.Fprintln(c.app.out, formatCounts(counts))
		return nil
	}

	table := newTodoTable(c.app.config.Display.TimeFormat, st.Categories)
	if st.View.GroupByCategory {
		for i, g := range result.Groups {
			if i > 0 {
				fmt.Fprintln(c.app.out)
			}
			fmt.Fprintf(c.app.out, "== %s (%d) ==\n", g.Name, len(g.Todos))
			if err := table.write(c.app.out, g.Todos); err != nil {
				return err
			}
		}
	} else if err := table.write(c.app.out, result.Todos); err != nil {
		return err
	}

	fmt.Fprintln(c.app.out)
	fmt.Fprintln(c.app.out, formatCounts(counts))
	return nil
}
