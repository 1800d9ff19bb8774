package services

import (
	"context"
	"strings"
	"time"

	"taskmaster/internal/domain"
	"taskmaster/internal/repository/sqlite"
	"taskmaster/internal/validation"
)

// todoServiceImpl implements the TodoService interface
type todoServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	todoValidator *validation.TodoValidator
	now           func() time.Time
}

// NewTodoService creates a new TodoService instance
func NewTodoService(repo sqlite.Repository) TodoService {
	return &todoServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		todoValidator: validation.NewTodoValidator(),
		now:           time.Now,
	}
}

// normalize fills the fields a client may omit and trims free text
func (s *todoServiceImpl) normalize(todo domain.Todo) domain.Todo {
	todo = todo.Clone()
	todo.Title = strings.TrimSpace(todo.Title)
	if todo.Status == "" {
		todo.Status = domain.StatusPending
	}
	if todo.Priority == "" {
		todo.Priority = domain.PriorityMedium
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = s.now().UTC()
	}
	for i := range todo.Subtasks {
		todo.Subtasks[i].Title = strings.TrimSpace(todo.Subtasks[i].Title)
	}
	return todo
}

// ListTodos returns every stored todo, newest first
func (s *todoServiceImpl) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.repo.ListTodos(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Todo.FromDatabaseSlice(rows), nil
}

// GetTodo retrieves a todo by its ID
func (s *todoServiceImpl) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	row, err := s.repo.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	todo := s.mapper.Todo.FromDatabase(*row)
	return &todo, nil
}

// CreateTodo validates and stores a client-built todo, returning it as stored
func (s *todoServiceImpl) CreateTodo(ctx context.Context, todo domain.Todo) (*domain.Todo, error) {
	todo = s.normalize(todo)
	if err := s.todoValidator.ValidateTodo(todo); err != nil {
		return nil, validation.AsAppError(err)
	}

	row := s.mapper.Todo.ToDatabase(todo)
	if err := s.repo.CreateTodo(ctx, &row); err != nil {
		return nil, err
	}
	return s.GetTodo(ctx, todo.ID)
}

// UpdateTodo replaces a todo wholesale. The path id always wins.
func (s *todoServiceImpl) UpdateTodo(ctx context.Context, id string, todo domain.Todo) (*domain.Todo, error) {
	todo.ID = id
	todo = s.normalize(todo)
	if err := s.todoValidator.ValidateTodo(todo); err != nil {
		return nil, validation.AsAppError(err)
	}

	row := s.mapper.Todo.ToDatabase(todo)
	if err := s.repo.UpdateTodo(ctx, &row); err != nil {
		return nil, err
	}
	return s.GetTodo(ctx, id)
}

// DeleteTodo removes a todo and its subtasks. Unknown ids are not an error.
func (s *todoServiceImpl) DeleteTodo(ctx context.Context, id string) error {
	return s.repo.DeleteTodo(ctx, id)
}
