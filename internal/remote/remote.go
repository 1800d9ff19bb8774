// Package remote is the client's port to the REST server that holds the
// authoritative todos and categories.
package remote

import (
	"context"

	"taskmaster/internal/domain"
)

// Remote is the set of calls the task store makes against the server.
// Every failure is reported as an error; callers do not distinguish kinds.
type Remote interface {
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateTodo(ctx context.Context, todo domain.Todo) error
	// UpdateTodo sends the full todo; the server replaces its copy
	UpdateTodo(ctx context.Context, todo domain.Todo) error
	DeleteTodo(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}
