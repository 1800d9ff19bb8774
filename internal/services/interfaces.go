// Package services holds the server-side business rules for todos and
// categories, sitting between the HTTP handlers and the repository.
package services

import (
	"context"

	"taskmaster/internal/domain"
)

// TodoService defines the business operations behind the /todos endpoints
type TodoService interface {
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	GetTodo(ctx context.Context, id string) (*domain.Todo, error)
	CreateTodo(ctx context.Context, todo domain.Todo) (*domain.Todo, error)
	// UpdateTodo replaces the stored todo; the id argument wins over todo.ID
	UpdateTodo(ctx context.Context, id string, todo domain.Todo) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

// CategoryService defines the business operations behind the /categories endpoints
type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
