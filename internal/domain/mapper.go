package domain

import (
	"taskmaster/internal/repository/sqlite"
)

// TodoMapper handles conversion between domain and database Todo models.
type TodoMapper struct{}

// NewTodoMapper creates a new TodoMapper instance.
func NewTodoMapper() *TodoMapper {
	return &TodoMapper{}
}

// ToDatabase converts a domain Todo to a database Todo.
func (m *TodoMapper) ToDatabase(todo Todo) sqlite.Todo {
	row := sqlite.Todo{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      string(todo.Status),
		Priority:    string(todo.Priority),
		CreatedAt:   todo.CreatedAt,
		UserID:      todo.UserID,
		DueDate:     todo.DueDate,
		CategoryIDs: append([]string{}, todo.CategoryIDs...),
		Subtasks:    make([]sqlite.Subtask, len(todo.Subtasks)),
	}
	for i, s := range todo.Subtasks {
		row.Subtasks[i] = sqlite.Subtask{
			ID:          s.ID,
			TodoID:      todo.ID,
			Position:    i,
			Title:       s.Title,
			IsCompleted: s.IsCompleted,
		}
	}
	return row
}

// FromDatabase converts a database Todo to a domain Todo.
// Nil slices come back empty so the wire form is always [] rather than null.
func (m *TodoMapper) FromDatabase(row sqlite.Todo) Todo {
	todo := Todo{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      Status(row.Status),
		Priority:    Priority(row.Priority),
		CreatedAt:   row.CreatedAt,
		UserID:      row.UserID,
		DueDate:     row.DueDate,
		CategoryIDs: append([]string{}, row.CategoryIDs...),
		Subtasks:    make([]Subtask, len(row.Subtasks)),
	}
	for i, s := range row.Subtasks {
		todo.Subtasks[i] = Subtask{ID: s.ID, Title: s.Title, IsCompleted: s.IsCompleted}
	}
	return todo
}

// FromDatabaseSlice converts a slice of database Todos to domain Todos.
func (m *TodoMapper) FromDatabaseSlice(rows []*sqlite.Todo) []Todo {
	todos := make([]Todo, len(rows))
	for i, row := range rows {
		todos[i] = m.FromDatabase(*row)
	}
	return todos
}

// CategoryMapper handles conversion between domain and database Category models.
type CategoryMapper struct{}

// NewCategoryMapper creates a new CategoryMapper instance.
func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

// ToDatabase converts a domain Category to a database Category.
func (m *CategoryMapper) ToDatabase(c Category) sqlite.Category {
	return sqlite.Category{ID: c.ID, Name: c.Name, Color: c.Color}
}

// FromDatabase converts a database Category to a domain Category.
func (m *CategoryMapper) FromDatabase(row sqlite.Category) Category {
	return Category{ID: row.ID, Name: row.Name, Color: row.Color}
}

// FromDatabaseSlice converts a slice of database Categories to domain Categories.
func (m *CategoryMapper) FromDatabaseSlice(rows []*sqlite.Category) []Category {
	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = m.FromDatabase(*row)
	}
	return categories
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Todo     *TodoMapper
	Category *CategoryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Todo:     NewTodoMapper(),
		Category: NewCategoryMapper(),
	}
}
