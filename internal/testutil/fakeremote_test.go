package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/internal/domain"
	apperrors "taskmaster/internal/errors"
)

func TestFakeRemote_TodoLifecycle(t *testing.T) {
	ctx := context.Background()
	f := NewFakeRemote()

	require.NoError(t, f.CreateTodo(ctx, domain.Todo{ID: "a", Title: "A"}))
	require.NoError(t, f.CreateTodo(ctx, domain.Todo{ID: "b", Title: "B"}))

	todos, err := f.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "b", todos[0].ID, "created todos are prepended")

	require.NoError(t, f.UpdateTodo(ctx, domain.Todo{ID: "a", Title: "A2"}))
	assert.Equal(t, "A2", f.Todos()[1].Title)

	require.NoError(t, f.DeleteTodo(ctx, "a"))
	require.NoError(t, f.DeleteTodo(ctx, "a"), "deletes are idempotent")
	assert.Len(t, f.Todos(), 1)

	assert.Equal(t, []string{"CreateTodo", "CreateTodo", "ListTodos", "UpdateTodo", "DeleteTodo", "DeleteTodo"}, f.Methods())
	assert.Equal(t, 2, f.DeleteCount())
}

func TestFakeRemote_UpdateUnknownTodo(t *testing.T) {
	f := NewFakeRemote()

	err := f.UpdateTodo(context.Background(), domain.Todo{ID: "missing"})

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNetwork))
}

func TestFakeRemote_DeleteCategoryStripsMembership(t *testing.T) {
	ctx := context.Background()
	f := NewFakeRemote()
	f.SetCategories(domain.Category{ID: "c1"}, domain.Category{ID: "c2"})
	f.SetTodos(domain.Todo{ID: "a", CategoryIDs: []string{"c1", "c2"}})

	require.NoError(t, f.DeleteCategory(ctx, "c1"))

	assert.Equal(t, []domain.Category{{ID: "c2"}}, f.Categories())
	assert.Equal(t, []string{"c2"}, f.Todos()[0].CategoryIDs)
}

func TestFakeRemote_ErrorInjection(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	f := NewFakeRemote()
	f.SetTodos(domain.Todo{ID: "a"}, domain.Todo{ID: "b"})
	f.DeleteTodoErrs["a"] = boom
	f.ListCategoriesErr = boom

	assert.ErrorIs(t, f.DeleteTodo(ctx, "a"), boom)
	assert.NoError(t, f.DeleteTodo(ctx, "b"))
	_, err := f.ListCategories(ctx)
	assert.ErrorIs(t, err, boom)

	assert.Len(t, f.Todos(), 1, "failed delete keeps the record")
	assert.Equal(t, 2, f.DeleteCount(), "failed calls are still recorded")
}

func TestFakeRemote_ReturnsCopies(t *testing.T) {
	f := NewFakeRemote()
	f.SetTodos(domain.Todo{ID: "a", CategoryIDs: []string{"c1"}})

	todos, err := f.ListTodos(context.Background())
	require.NoError(t, err)
	todos[0].CategoryIDs[0] = "changed"

	assert.Equal(t, []string{"c1"}, f.Todos()[0].CategoryIDs)
}

func TestFakeRemote_Gate(t *testing.T) {
	f := NewFakeRemote()
	f.Gate = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ListTodos(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.Calls())
}
