// Package store owns the client-side task state and keeps it in sync with
// the server using optimistic updates.
//
// Every mutating action runs in two phases. The new state is computed by a
// pure transition and committed at once; the matching request is then queued
// on a background worker. When a request fails the store logs it and
// replaces its collections with a fresh fetch from the server.
package store

import "taskmaster/internal/domain"

// State is a snapshot of the store.
type State struct {
	Todos      []domain.Todo
	Categories []domain.Category
	IsLoading  bool
	View       domain.ViewSettings
}

// initialState is empty, not loading, with default view settings.
func initialState() State {
	return State{
		Todos:      []domain.Todo{},
		Categories: []domain.Category{},
		View:       domain.DefaultViewSettings(),
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := s
	c.Todos = make([]domain.Todo, len(s.Todos))
	for i, t := range s.Todos {
		c.Todos[i] = t.Clone()
	}
	c.Categories = append([]domain.Category{}, s.Categories...)
	return c
}

// Todo looks up a todo by id.
func (s State) Todo(id string) (domain.Todo, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Todos[i], true
	}
	return domain.Todo{}, false
}

// Category looks up a category by id.
func (s State) Category(id string) (domain.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (s State) indexOf(id string) int {
	for i, t := range s.Todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
