package sqlite

import "time"

// Todo is the stored form of a task. CategoryIDs and Subtasks live in their
// own tables and are assembled by the repository.
type Todo struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	CreatedAt   time.Time
	UserID      string
	DueDate     *time.Time // NULL when the task has no due date
	CategoryIDs []string
	Subtasks    []Subtask
}

// Subtask is a checklist item owned by exactly one todo, ordered by Position.
type Subtask struct {
	ID          string
	TodoID      string
	Position    int
	Title       string
	IsCompleted bool
}

// Category represents a category row
type Category struct {
	ID    string
	Name  string
	Color string
}
