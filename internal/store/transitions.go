package store

import (
	"time"

	"taskmaster/internal/domain"
)

// Transitions are pure: they never touch their input and never perform I/O.
// Those that target a single todo report whether it existed together with
// the updated record, which is what the server is sent.

func replaceData(s State, todos []domain.Todo, categories []domain.Category) State {
	next := s.Clone()
	next.Todos = make([]domain.Todo, len(todos))
	for i, t := range todos {
		next.Todos[i] = t.Clone()
	}
	next.Categories = append([]domain.Category{}, categories...)
	return next
}

func setLoading(s State, loading bool) State {
	next := s.Clone()
	next.IsLoading = loading
	return next
}

// addTodo prepends the todo.
func addTodo(s State, todo domain.Todo) State {
	next := s.Clone()
	next.Todos = append([]domain.Todo{todo.Clone()}, next.Todos...)
	return next
}

// updateTodo applies fn to a copy of the todo with the given id.
func updateTodo(s State, id string, fn func(*domain.Todo)) (State, domain.Todo, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return s, domain.Todo{}, false
	}
	next := s.Clone()
	fn(&next.Todos[i])
	return next, next.Todos[i].Clone(), true
}

func toggleStatus(s State, id string, status domain.Status) (State, domain.Todo, bool) {
	return updateTodo(s, id, func(t *domain.Todo) {
		t.Status = status
	})
}

func deleteTodo(s State, id string) (State, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return s, false
	}
	next := s.Clone()
	next.Todos = append(next.Todos[:i], next.Todos[i+1:]...)
	return next, true
}

// TodoPatch holds the editable fields of a todo. Nil fields are left alone.
// An empty DueDate clears the due date.
type TodoPatch struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	DueDate     *string
}

// patchTodo expects dueDate to be normalized already by the caller.
func patchTodo(s State, id string, p TodoPatch, dueDate *time.Time) (State, domain.Todo, bool) {
	return updateTodo(s, id, func(t *domain.Todo) {
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		if p.DueDate != nil {
			t.DueDate = dueDate
		}
	})
}

// setTodoCategories replaces the category set, dropping duplicates.
func setTodoCategories(s State, id string, categoryIDs []string) (State, domain.Todo, bool) {
	return updateTodo(s, id, func(t *domain.Todo) {
		seen := make(map[string]bool, len(categoryIDs))
		ids := make([]string, 0, len(categoryIDs))
		for _, c := range categoryIDs {
			if !seen[c] {
				seen[c] = true
				ids = append(ids, c)
			}
		}
		t.CategoryIDs = ids
	})
}

func addSubtask(s State, todoID string, subtask domain.Subtask) (State, domain.Todo, bool) {
	return updateTodo(s, todoID, func(t *domain.Todo) {
		t.Subtasks = append(t.Subtasks, subtask)
	})
}

// toggleSubtask flips completion of one subtask. An unknown subtask leaves
// the todo unchanged and reports false.
func toggleSubtask(s State, todoID, subtaskID string) (State, domain.Todo, bool) {
	found := false
	next, todo, ok := updateTodo(s, todoID, func(t *domain.Todo) {
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subtaskID {
				t.Subtasks[i].IsCompleted = !t.Subtasks[i].IsCompleted
				found = true
			}
		}
	})
	if !ok || !found {
		return s, domain.Todo{}, false
	}
	return next, todo, true
}

func deleteSubtask(s State, todoID, subtaskID string) (State, domain.Todo, bool) {
	found := false
	next, todo, ok := updateTodo(s, todoID, func(t *domain.Todo) {
		kept := t.Subtasks[:0]
		for _, st := range t.Subtasks {
			if st.ID == subtaskID {
				found = true
				continue
			}
			kept = append(kept, st)
		}
		t.Subtasks = kept
	})
	if !ok || !found {
		return s, domain.Todo{}, false
	}
	return next, todo, true
}

// addCategory appends the category.
func addCategory(s State, category domain.Category) State {
	next := s.Clone()
	next.Categories = append(next.Categories, category)
	return next
}

// deleteCategory removes the category and strips it from every todo.
// Todos themselves are kept.
func deleteCategory(s State, id string) (State, bool) {
	i := -1
	for j, c := range s.Categories {
		if c.ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return s, false
	}
	next := s.Clone()
	next.Categories = append(next.Categories[:i], next.Categories[i+1:]...)
	for j := range next.Todos {
		next.Todos[j] = next.Todos[j].WithoutCategory(id)
	}
	return next, true
}

// clearCompleted drops every completed todo and returns their ids in list order.
func clearCompleted(s State) (State, []string) {
	next := s.Clone()
	kept := make([]domain.Todo, 0, len(next.Todos))
	var removed []string
	for _, t := range next.Todos {
		if t.IsCompleted() {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	next.Todos = kept
	return next, removed
}

func setFilter(s State, f domain.Filter) State {
	next := s.Clone()
	next.View.Filter = f
	return next
}

func setSortBy(s State, k domain.SortKey) State {
	next := s.Clone()
	next.View.SortBy = k
	return next
}

func toggleGroupBy(s State) State {
	next := s.Clone()
	next.View.GroupByCategory = !next.View.GroupByCategory
	return next
}
