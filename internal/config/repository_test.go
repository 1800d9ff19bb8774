package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("TM_DB_DIR", tmpDir)
	t.Setenv("TM_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	_, err = os.Stat(filepath.Join(tmpDir, "tm.db"))
	assert.NoError(t, err, "database file should be created inside the configured directory")

	err = repo.CreateTodo(context.Background(), &sqlite.Todo{
		ID: "t1", Title: "Test Task", Status: "PENDING", Priority: "LOW", CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	todos, err := repo.ListTodos(context.Background())
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	err = repo.CreateCategory(context.Background(), &sqlite.Category{ID: "c1", Name: "Work", Color: "blue"})
	require.NoError(t, err)

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
