// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"sync"

	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
	"taskmaster/internal/remote"
)

// Call records one request made against FakeRemote.
type Call struct {
	Method string
	ID     string
	Todo   *domain.Todo // payload of CreateTodo/UpdateTodo
}

// FakeRemote is an in-memory implementation of remote.Remote for testing.
// It behaves like the REST server: deletes are idempotent, updates of
// unknown todos fail with 404 and deleting a category strips it from todos.
type FakeRemote struct {
	mu         sync.Mutex
	todos      []domain.Todo
	categories []domain.Category
	calls      []Call

	// Error injection for testing. Set before the store issues requests.
	ListTodosErr      error
	ListCategoriesErr error
	CreateTodoErr     error
	UpdateTodoErr     error
	DeleteTodoErr     error
	CreateCategoryErr error
	DeleteCategoryErr error
	DeleteTodoErrs    map[string]error // todo id -> error

	// Gate, when set, holds every call until a value is received or the
	// channel is closed. Used to observe state while a request is in flight.
	Gate chan struct{}
}

var _ remote.Remote = (*FakeRemote)(nil)

// NewFakeRemote creates an empty FakeRemote.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		DeleteTodoErrs: make(map[string]error),
	}
}

// SetTodos replaces the server-side todos.
func (f *FakeRemote) SetTodos(todos ...domain.Todo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todos = cloneTodos(todos)
}

// SetCategories replaces the server-side categories.
func (f *FakeRemote) SetCategories(categories ...domain.Category) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append([]domain.Category{}, categories...)
}

// Todos returns a copy of the server-side todos.
func (f *FakeRemote) Todos() []domain.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneTodos(f.todos)
}

// Categories returns a copy of the server-side categories.
func (f *FakeRemote) Categories() []domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Category{}, f.categories...)
}

// Calls returns every recorded call in order.
func (f *FakeRemote) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call{}, f.calls...)
}

// Methods returns the method names of the recorded calls in order.
func (f *FakeRemote) Methods() []string {
	calls := f.Calls()
	methods := make([]string, len(calls))
	for i, c := range calls {
		methods[i] = c.Method
	}
	return methods
}

// CallCount counts recorded calls of one method.
func (f *FakeRemote) CallCount(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// DeleteCount returns how many DeleteTodo requests were made.
func (f *FakeRemote) DeleteCount() int {
	return f.CallCount("DeleteTodo")
}

// ResetCalls forgets the recorded calls.
func (f *FakeRemote) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeRemote) enter(ctx context.Context, call Call) error {
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	return nil
}

// ListTodos implements remote.Remote.
func (f *FakeRemote) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	if err := f.enter(ctx, Call{Method: "ListTodos"}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListTodosErr != nil {
		return nil, f.ListTodosErr
	}
	return cloneTodos(f.todos), nil
}

// ListCategories implements remote.Remote.
func (f *FakeRemote) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := f.enter(ctx, Call{Method: "ListCategories"}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListCategoriesErr != nil {
		return nil, f.ListCategoriesErr
	}
	return append([]domain.Category{}, f.categories...), nil
}

// CreateTodo implements remote.Remote.
func (f *FakeRemote) CreateTodo(ctx context.Context, todo domain.Todo) error {
	payload := todo.Clone()
	if err := f.enter(ctx, Call{Method: "CreateTodo", ID: todo.ID, Todo: &payload}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateTodoErr != nil {
		return f.CreateTodoErr
	}
	f.todos = append([]domain.Todo{todo.Clone()}, f.todos...)
	return nil
}

// UpdateTodo implements remote.Remote.
func (f *FakeRemote) UpdateTodo(ctx context.Context, todo domain.Todo) error {
	payload := todo.Clone()
	if err := f.enter(ctx, Call{Method: "UpdateTodo", ID: todo.ID, Todo: &payload}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateTodoErr != nil {
		return f.UpdateTodoErr
	}
	for i := range f.todos {
		if f.todos[i].ID == todo.ID {
			f.todos[i] = todo.Clone()
			return nil
		}
	}
	return errors.NewNetworkError(http.MethodPut, "/todos/"+todo.ID, http.StatusNotFound, nil)
}

// DeleteTodo implements remote.Remote.
func (f *FakeRemote) DeleteTodo(ctx context.Context, id string) error {
	if err := f.enter(ctx, Call{Method: "DeleteTodo", ID: id}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.DeleteTodoErrs[id]; err != nil {
		return err
	}
	if f.DeleteTodoErr != nil {
		return f.DeleteTodoErr
	}
	kept := f.todos[:0]
	for _, t := range f.todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.todos = kept
	return nil
}

// CreateCategory implements remote.Remote.
func (f *FakeRemote) CreateCategory(ctx context.Context, category domain.Category) error {
	if err := f.enter(ctx, Call{Method: "CreateCategory", ID: category.ID}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateCategoryErr != nil {
		return f.CreateCategoryErr
	}
	f.categories = append(f.categories, category)
	return nil
}

// DeleteCategory implements remote.Remote.
func (f *FakeRemote) DeleteCategory(ctx context.Context, id string) error {
	if err := f.enter(ctx, Call{Method: "DeleteCategory", ID: id}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteCategoryErr != nil {
		return f.DeleteCategoryErr
	}
	kept := f.categories[:0]
	for _, c := range f.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.categories = kept
	for i := range f.todos {
		f.todos[i] = f.todos[i].WithoutCategory(id)
	}
	return nil
}

func cloneTodos(todos []domain.Todo) []domain.Todo {
	out := make([]domain.Todo, len(todos))
	for i, t := range todos {
		out[i] = t.Clone()
	}
	return out
}
