package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
	"taskmaster/internal/view"
)

// Output formats accepted by --format
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// shortIDLength is how much of an id the table shows; any unique prefix
// is accepted back as input
const shortIDLength = 8

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", errors.NewInvalidInputError("format", s, "must be table, json or yaml")
}

// listing is the machine-readable shape of `tm list`
type listing struct {
	Filter domain.Filter  `json:"filter" yaml:"filter"`
	SortBy domain.SortKey `json:"sortBy" yaml:"sortBy"`
	Counts view.Counts    `json:"counts" yaml:"counts"`
	Todos  []domain.Todo  `json:"todos,omitempty" yaml:"todos,omitempty"`
	Groups []groupListing `json:"groups,omitempty" yaml:"groups,omitempty"`
}

type groupListing struct {
	Name       string        `json:"name" yaml:"name"`
	CategoryID string        `json:"categoryId,omitempty" yaml:"categoryId,omitempty"`
	Todos      []domain.Todo `json:"todos" yaml:"todos"`
}

func newListing(settings domain.ViewSettings, result view.Result, counts view.Counts) listing {
	l := listing{Filter: settings.Filter, SortBy: settings.SortBy, Counts: counts}
	if !settings.GroupByCategory {
		l.Todos = result.Todos
		return l
	}
	for _, g := range result.Groups {
		gl := groupListing{Name: g.Name, Todos: g.Todos}
		if g.Category != nil {
			gl.CategoryID = g.Category.ID
		}
		l.Groups = append(l.Groups, gl)
	}
	return l
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStructured renders v as json or yaml
func writeStructured(w io.Writer, format string, v interface{}) error {
	if format == FormatYAML {
		return writeYAML(w, v)
	}
	return writeJSON(w, v)
}

// todoTable renders todos as aligned columns
type todoTable struct {
	timeFormat string
	categories map[string]domain.Category
}

func newTodoTable(timeFormat string, categories []domain.Category) *todoTable {
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &todoTable{timeFormat: timeFormat, categories: byID}
}

func (t *todoTable) write(w io.Writer, todos []domain.Todo) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRI\tDUE\tTITLE\tCATEGORIES\tSUBTASKS")
	for _, todo := range todos {
		due := "-"
		if todo.DueDate != nil {
			due = todo.DueDate.UTC().Format(t.timeFormat)
		}
		subtasks := "-"
		if len(todo.Subtasks) > 0 {
			subtasks = fmt.Sprintf("%d/%d", todo.CompletedSubtasks(), len(todo.Subtasks))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(todo.ID), todo.Status, todo.Priority, due, todo.Title, t.categoryNames(todo), subtasks)
	}
	return tw.Flush()
}

func (t *todoTable) categoryNames(todo domain.Todo) string {
	if len(todo.CategoryIDs) == 0 {
		return "-"
	}
	names := make([]string, 0, len(todo.CategoryIDs))
	for _, id := range todo.CategoryIDs {
		if c, ok := t.categories[id]; ok {
			names = append(names, c.Name)
		} else {
			names = append(names, shortID(id))
		}
	}
	return strings.Join(names, ", ")
}

func writeCategoryTable(w io.Writer, categories []domain.Category) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOLOR")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", shortID(c.ID), c.Name, c.Color)
	}
	return tw.Flush()
}

func writeSubtasks(w io.Writer, todo domain.Todo) {
	for i, s := range todo.Subtasks {
		mark := " "
		if s.IsCompleted {
			mark = "x"
		}
		fmt.Fprintf(w, "  %s. [%s] %s (%s)\n", positionOf(i), mark, s.Title, shortID(s.ID))
	}
}

func formatCounts(c view.Counts) string {
	noun := "todos"
	if c.Total == 1 {
		noun = "todo"
	}
	return fmt.Sprintf("%d %s: %d pending, %d in progress, %d completed", c.Total, noun, c.Pending, c.InProgress, c.Completed)
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// positionOf is the 1-based position shown next to subtasks
func positionOf(i int) string {
	return strconv.Itoa(i + 1)
}
