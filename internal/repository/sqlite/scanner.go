package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTodo scans the todos columns of a single row. Subtasks and categories
// are attached separately.
func ScanTodo(scanner Scanner) (*Todo, error) {
	todo := &Todo{}
	var createdAt string
	var description, dueDate sql.NullString

	err := scanner.Scan(
		&todo.ID,
		&todo.Title,
		&description,
		&todo.Status,
		&todo.Priority,
		&createdAt,
		&todo.UserID,
		&dueDate,
	)
	if err != nil {
		return nil, err
	}

	todo.Description = description.String
	if todo.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if todo.DueDate, err = ParseNullTimeFromDB(dueDate); err != nil {
		return nil, err
	}

	return todo, nil
}

// ScanTodos scans multiple todos from database rows
func ScanTodos(rows Rows) ([]*Todo, error) {
	todos := []*Todo{}
	for rows.Next() {
		todo, err := ScanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

// ScanSubtask scans a single subtask from a database row
func ScanSubtask(scanner Scanner) (*Subtask, error) {
	subtask := &Subtask{}
	err := scanner.Scan(&subtask.ID, &subtask.TodoID, &subtask.Position, &subtask.Title, &subtask.IsCompleted)
	if err != nil {
		return nil, err
	}
	return subtask, nil
}

// ScanSubtasks scans multiple subtasks from database rows
func ScanSubtasks(rows Rows) ([]*Subtask, error) {
	var subtasks []*Subtask
	for rows.Next() {
		subtask, err := ScanSubtask(rows)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, subtask)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subtasks, nil
}

// membership is one todo_categories row
type membership struct {
	TodoID     string
	CategoryID string
}

func scanMembership(scanner Scanner) (*membership, error) {
	m := &membership{}
	if err := scanner.Scan(&m.TodoID, &m.CategoryID); err != nil {
		return nil, err
	}
	return m, nil
}

func scanMemberships(rows Rows) ([]*membership, error) {
	var out []*membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ScanCategory scans a single category from a database row
func ScanCategory(scanner Scanner) (*Category, error) {
	category := &Category{}
	err := scanner.Scan(&category.ID, &category.Name, &category.Color)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ScanCategories scans multiple categories from database rows
func ScanCategories(rows Rows) ([]*Category, error) {
	categories := []*Category{}
	for rows.Next() {
		category, err := ScanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
