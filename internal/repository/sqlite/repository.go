package sqlite

import (
	"context"
	"database/sql"

	"taskmaster/internal/errors"
	"taskmaster/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Todo operations
	ListTodos(ctx context.Context) ([]*Todo, error)
	GetTodo(ctx context.Context, id string) (*Todo, error)
	CreateTodo(ctx context.Context, todo *Todo) error
	UpdateTodo(ctx context.Context, todo *Todo) error
	DeleteTodo(ctx context.Context, id string) error

	// Category operations
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

const todoColumns = `id, title, description, status, priority, created_at, user_id, due_date`

// New creates a new SQLite repository instance and brings its schema up to date
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	// one connection keeps :memory: databases and the foreign_keys pragma stable
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewStorageError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ListTodos returns every todo, newest first, with subtasks and categories attached
func (r *SQLiteRepository) ListTodos(ctx context.Context) ([]*Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY created_at DESC, rowid DESC`
	todos, err := QueryMultiple(ctx, r.db, query, ScanTodos, "todos")
	if err != nil {
		return nil, err
	}

	subtasks, err := QueryMultiple(ctx, r.db,
		`SELECT id, todo_id, position, title, is_completed FROM subtasks ORDER BY todo_id, position`,
		ScanSubtasks, "subtasks")
	if err != nil {
		return nil, err
	}

	members, err := QueryMultiple(ctx, r.db,
		`SELECT todo_id, category_id FROM todo_categories ORDER BY rowid`,
		scanMemberships, "todo categories")
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Todo, len(todos))
	for _, todo := range todos {
		todo.CategoryIDs = []string{}
		todo.Subtasks = []Subtask{}
		byID[todo.ID] = todo
	}
	for _, s := range subtasks {
		if todo, ok := byID[s.TodoID]; ok {
			todo.Subtasks = append(todo.Subtasks, *s)
		}
	}
	for _, m := range members {
		if todo, ok := byID[m.TodoID]; ok {
			todo.CategoryIDs = append(todo.CategoryIDs, m.CategoryID)
		}
	}

	return todos, nil
}

// GetTodo retrieves a todo by ID
func (r *SQLiteRepository) GetTodo(ctx context.Context, id string) (*Todo, error) {
	return r.getTodo(ctx, r.db, id)
}

func (r *SQLiteRepository) getTodo(ctx context.Context, db DBTX, id string) (*Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ?`
	todo, err := QuerySingle(ctx, db, query, ScanTodo, "todo", id, id)
	if err != nil {
		return nil, err
	}

	subtasks, err := QueryMultiple(ctx, db,
		`SELECT id, todo_id, position, title, is_completed FROM subtasks WHERE todo_id = ? ORDER BY position`,
		ScanSubtasks, "subtasks", id)
	if err != nil {
		return nil, err
	}
	todo.Subtasks = make([]Subtask, 0, len(subtasks))
	for _, s := range subtasks {
		todo.Subtasks = append(todo.Subtasks, *s)
	}

	members, err := QueryMultiple(ctx, db,
		`SELECT todo_id, category_id FROM todo_categories WHERE todo_id = ? ORDER BY rowid`,
		scanMemberships, "todo categories", id)
	if err != nil {
		return nil, err
	}
	todo.CategoryIDs = make([]string, 0, len(members))
	for _, m := range members {
		todo.CategoryIDs = append(todo.CategoryIDs, m.CategoryID)
	}

	return todo, nil
}

// CreateTodo inserts a todo together with its subtasks and category memberships
func (r *SQLiteRepository) CreateTodo(ctx context.Context, todo *Todo) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
		INSERT INTO todos (` + todoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		err := Execute(ctx, tx, query,
			todo.ID, todo.Title, todo.Description, todo.Status, todo.Priority,
			FormatTimeForDB(todo.CreatedAt), todo.UserID, FormatTimePtrForDB(todo.DueDate))
		if err != nil {
			return err
		}
		return r.writeChildren(ctx, tx, todo)
	})
}

// UpdateTodo replaces a todo, its subtasks and its category memberships
func (r *SQLiteRepository) UpdateTodo(ctx context.Context, todo *Todo) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
		UPDATE todos
		SET title = ?, description = ?, status = ?, priority = ?, created_at = ?, user_id = ?, due_date = ?
		WHERE id = ?`
		err := ExecuteWithRowsAffected(ctx, tx, query, "todo", todo.ID,
			todo.Title, todo.Description, todo.Status, todo.Priority,
			FormatTimeForDB(todo.CreatedAt), todo.UserID, FormatTimePtrForDB(todo.DueDate), todo.ID)
		if err != nil {
			return err
		}

		if err := Execute(ctx, tx, `DELETE FROM subtasks WHERE todo_id = ?`, todo.ID); err != nil {
			return err
		}
		if err := Execute(ctx, tx, `DELETE FROM todo_categories WHERE todo_id = ?`, todo.ID); err != nil {
			return err
		}
		return r.writeChildren(ctx, tx, todo)
	})
}

// writeChildren stores subtasks in slice order and links only categories that exist
func (r *SQLiteRepository) writeChildren(ctx context.Context, tx DBTX, todo *Todo) error {
	for i, s := range todo.Subtasks {
		err := Execute(ctx, tx,
			`INSERT INTO subtasks (id, todo_id, position, title, is_completed) VALUES (?, ?, ?, ?, ?)`,
			s.ID, todo.ID, i, s.Title, s.IsCompleted)
		if err != nil {
			return err
		}
	}

	for _, categoryID := range todo.CategoryIDs {
		err := Execute(ctx, tx,
			`INSERT OR IGNORE INTO todo_categories (todo_id, category_id)
			SELECT ?, id FROM categories WHERE id = ?`,
			todo.ID, categoryID)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteTodo deletes a todo by ID. Deleting a missing todo is not an error.
func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id string) error {
	return Execute(ctx, r.db, `DELETE FROM todos WHERE id = ?`, id)
}

// ListCategories retrieves all categories in creation order
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	query := `SELECT id, name, color FROM categories ORDER BY rowid`
	return QueryMultiple(ctx, r.db, query, ScanCategories, "categories")
}

// GetCategory retrieves a category by ID
func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	query := `SELECT id, name, color FROM categories WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanCategory, "category", id, id)
}

// CreateCategory creates a new category
func (r *SQLiteRepository) CreateCategory(ctx context.Context, category *Category) error {
	query := `INSERT INTO categories (id, name, color) VALUES (?, ?, ?)`
	return Execute(ctx, r.db, query, category.ID, category.Name, category.Color)
}

// DeleteCategory deletes a category; memberships go with it via the foreign key.
// Deleting a missing category is not an error.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	return Execute(ctx, r.db, `DELETE FROM categories WHERE id = ?`, id)
}
