// Package view derives what the user sees from store state: filter, then
// sort, then optionally group by category. Everything is recomputed per call.
package view

import (
	"sort"

	"taskmaster/internal/domain"
)

// UncategorizedName labels the group of todos without categories.
const UncategorizedName = "Uncategorized"

// Group is one section of a grouped listing. Category is nil for the
// Uncategorized group.
type Group struct {
	Category *domain.Category
	Name     string
	Todos    []domain.Todo
}

// Result is the visible listing. Groups is nil unless grouping is enabled.
type Result struct {
	Todos  []domain.Todo
	Groups []Group
}

// Apply filters, sorts and, when enabled, groups todos. The input is not modified.
func Apply(todos []domain.Todo, categories []domain.Category, settings domain.ViewSettings) Result {
	visible := Sort(Filter(todos, settings.Filter), settings.SortBy)
	result := Result{Todos: visible}
	if settings.GroupByCategory {
		result.Groups = GroupByCategory(visible, categories)
	}
	return result
}

// Filter keeps the todos matching f. In-progress todos only pass FilterAll.
func Filter(todos []domain.Todo, f domain.Filter) []domain.Todo {
	out := make([]domain.Todo, 0, len(todos))
	for _, t := range todos {
		switch f {
		case domain.FilterPending:
			if t.Status != domain.StatusPending {
				continue
			}
		case domain.FilterCompleted:
			if t.Status != domain.StatusCompleted {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Sort returns a stably sorted copy.
//   - priority: High, Medium, Low
//   - dueDate: earliest first, todos without a due date last
//   - createdAt (default): newest first
func Sort(todos []domain.Todo, key domain.SortKey) []domain.Todo {
	out := append([]domain.Todo{}, todos...)
	var less func(a, b domain.Todo) bool
	switch key {
	case domain.SortByPriority:
		less = func(a, b domain.Todo) bool {
			return a.Priority.Rank() > b.Priority.Rank()
		}
	case domain.SortByDueDate:
		less = func(a, b domain.Todo) bool {
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			}
			return a.DueDate.Before(*b.DueDate)
		}
	default:
		less = func(a, b domain.Todo) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

// GroupByCategory builds one group per category in category order, holding
// every todo tagged with it, followed by an Uncategorized group. A todo in
// several categories appears in each of them. Empty groups are omitted.
func GroupByCategory(todos []domain.Todo, categories []domain.Category) []Group {
	groups := make([]Group, 0, len(categories)+1)
	for i := range categories {
		c := categories[i]
		var members []domain.Todo
		for _, t := range todos {
			if t.HasCategory(c.ID) {
				members = append(members, t)
			}
		}
		if len(members) > 0 {
			groups = append(groups, Group{Category: &c, Name: c.Name, Todos: members})
		}
	}

	var uncategorized []domain.Todo
	for _, t := range todos {
		if len(t.CategoryIDs) == 0 {
			uncategorized = append(uncategorized, t)
		}
	}
	if len(uncategorized) > 0 {
		groups = append(groups, Group{Name: UncategorizedName, Todos: uncategorized})
	}
	return groups
}

// Counts tallies todos by status.
type Counts struct {
	Total      int `json:"total" yaml:"total"`
	Pending    int `json:"pending" yaml:"pending"`
	InProgress int `json:"inProgress" yaml:"inProgress"`
	Completed  int `json:"completed" yaml:"completed"`
}

// Count tallies todos by status.
func Count(todos []domain.Todo) Counts {
	c := Counts{Total: len(todos)}
	for _, t := range todos {
		switch t.Status {
		case domain.StatusPending:
			c.Pending++
		case domain.StatusInProgress:
			c.InProgress++
		case domain.StatusCompleted:
			c.Completed++
		}
	}
	return c
}
