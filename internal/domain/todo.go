package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a todo.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus accepts the wire form or a loose user spelling ("in-progress", "done").
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "todo", "open":
		return StatusPending, nil
	case "in_progress", "in-progress", "inprogress", "doing":
		return StatusInProgress, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Priority ranks how urgent a todo is.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// Rank orders priorities so that High > Medium > Low. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ParsePriority accepts the wire form or a short alias ("h", "med").
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m", "normal":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Subtask is a checklist entry owned by exactly one todo.
type Subtask struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	IsCompleted bool   `json:"isCompleted" yaml:"isCompleted"`
}

// Todo is a user-created work item.
// ID is assigned by the client at creation and never changes afterwards.
type Todo struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status     `json:"status" yaml:"status"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UserID      string     `json:"userId" yaml:"userId"`
	DueDate     *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	CategoryIDs []string   `json:"categoryIds" yaml:"categoryIds"`
	Subtasks    []Subtask  `json:"subtasks" yaml:"subtasks"`
}

// NewTodo holds the caller-supplied fields of a todo about to be created.
// DueDate is the raw user input; it is normalized by NormalizeDueDate.
type NewTodo struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	UserID      string
	DueDate     string
	CategoryIDs []string
}

// Clone returns a deep copy so callers never share slices with the original.
func (t Todo) Clone() Todo {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.CategoryIDs = append([]string{}, t.CategoryIDs...)
	c.Subtasks = append([]Subtask{}, t.Subtasks...)
	return c
}

// IsCompleted reports whether the todo is done.
func (t Todo) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// HasCategory reports whether categoryID is in the todo's category set.
func (t Todo) HasCategory(categoryID string) bool {
	for _, id := range t.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// WithoutCategory returns a copy with categoryID removed from the category set.
func (t Todo) WithoutCategory(categoryID string) Todo {
	c := t.Clone()
	ids := c.CategoryIDs[:0]
	for _, id := range c.CategoryIDs {
		if id != categoryID {
			ids = append(ids, id)
		}
	}
	c.CategoryIDs = ids
	return c
}

// CompletedSubtasks counts the finished checklist entries.
func (t Todo) CompletedSubtasks() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.IsCompleted {
			n++
		}
	}
	return n
}

// IsValid checks the fields every stored todo must carry.
func (t Todo) IsValid() bool {
	return t.ID != "" && strings.TrimSpace(t.Title) != "" && t.Status.IsValid() && t.Priority.IsValid()
}

// String returns the todo title for display purposes.
func (t Todo) String() string {
	return t.Title
}
