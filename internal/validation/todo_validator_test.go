package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/internal/domain"
)

func validTodo() domain.Todo {
	return domain.Todo{
		ID:          "t1",
		Title:       "Write report",
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:      "user-1",
		CategoryIDs: []string{"c1"},
		Subtasks:    []domain.Subtask{{ID: "s1", Title: "outline"}},
	}
}

func fieldsOf(err error) []string {
	ve, ok := err.(*ValidationError)
	if !ok {
		return nil
	}
	var fields []string
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestTodoValidator_ValidateTitle(t *testing.T) {
	tv := NewTodoValidator()

	tests := []struct {
		name    string
		title   string
		wantErr ValidationErrorType
	}{
		{"valid", "Buy milk", ""},
		{"padded is fine", "  Buy milk  ", ""},
		{"empty", "", ErrorTypeRequired},
		{"blank", "   ", ErrorTypeRequired},
		{"too long", strings.Repeat("a", TitleMaxLength+1), ErrorTypeInvalidLength},
		{"control character", "Buy\nmilk", ErrorTypeInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateTitle("title", tt.title)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve := err.(*ValidationError)
			assert.Equal(t, tt.wantErr, ve.Errors[0].Type)
			assert.Equal(t, "title", ve.Errors[0].Field)
		})
	}
}

func TestTodoValidator_ValidateNewTodo(t *testing.T) {
	tv := NewTodoValidator()

	tests := []struct {
		name       string
		input      domain.NewTodo
		wantFields []string
	}{
		{
			name:  "minimal input",
			input: domain.NewTodo{Title: "Buy milk"},
		},
		{
			name: "full input",
			input: domain.NewTodo{
				Title:       "Buy milk",
				Description: "two litres\nsemi-skimmed",
				Status:      domain.StatusInProgress,
				Priority:    domain.PriorityHigh,
				DueDate:     "2024-01-01",
				CategoryIDs: []string{"c1", "c2"},
			},
		},
		{
			name:       "unknown enums",
			input:      domain.NewTodo{Title: "x", Status: "LATER", Priority: "URGENT"},
			wantFields: []string{"status", "priority"},
		},
		{
			name:       "bad due date",
			input:      domain.NewTodo{Title: "x", DueDate: "next tuesday"},
			wantFields: []string{"dueDate"},
		},
		{
			name:       "duplicate category",
			input:      domain.NewTodo{Title: "x", CategoryIDs: []string{"c1", "c1"}},
			wantFields: []string{"categoryIds"},
		},
		{
			name:       "every problem is reported",
			input:      domain.NewTodo{Description: strings.Repeat("d", DescriptionMaxLength+1), DueDate: "?"},
			wantFields: []string{"title", "description", "dueDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateNewTodo(tt.input)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fieldsOf(err))
		})
	}
}

func TestTodoValidator_ValidateTodo(t *testing.T) {
	tv := NewTodoValidator()

	tests := []struct {
		name       string
		mutate     func(*domain.Todo)
		wantFields []string
	}{
		{"valid", func(*domain.Todo) {}, nil},
		{"missing id", func(td *domain.Todo) { td.ID = "" }, []string{"id"}},
		{"missing created at", func(td *domain.Todo) { td.CreatedAt = time.Time{} }, []string{"createdAt"}},
		{"empty status", func(td *domain.Todo) { td.Status = "" }, []string{"status"}},
		{"lowercase priority", func(td *domain.Todo) { td.Priority = "high" }, []string{"priority"}},
		{"blank subtask title", func(td *domain.Todo) { td.Subtasks[0].Title = " " }, []string{"subtasks.title"}},
		{"duplicate subtask id", func(td *domain.Todo) {
			td.Subtasks = append(td.Subtasks, domain.Subtask{ID: "s1", Title: "again"})
		}, []string{"subtasks"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo := validTodo()
			tt.mutate(&todo)

			err := tv.ValidateTodo(todo)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fieldsOf(err))
		})
	}
}
