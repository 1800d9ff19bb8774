package validation

import (
	"taskmaster/internal/domain"
)

// TodoValidator provides validation for todo and subtask input
type TodoValidator struct {
	validator *Validator
}

// NewTodoValidator creates a new todo validator
func NewTodoValidator() *TodoValidator {
	return &TodoValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle validates a todo or subtask title
func (tv *TodoValidator) ValidateTitle(field, title string) error {
	validationError := NewValidationError()
	tv.checkTitle(validationError, field, title)
	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func (tv *TodoValidator) checkTitle(ve *ValidationError, field, title string) {
	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError(field)
		return
	}
	if !tv.validator.IsWithinLength(trimmed, TitleMaxLength) {
		ve.AddInvalidLengthError(field, trimmed, TitleMaxLength)
	}
	if tv.validator.HasControlCharacters(trimmed, false) {
		ve.AddInvalidCharacterError(field, trimmed)
	}
}

func (tv *TodoValidator) checkDescription(ve *ValidationError, description string) {
	if !tv.validator.IsWithinLength(description, DescriptionMaxLength) {
		ve.AddInvalidLengthError("description", nil, DescriptionMaxLength)
	}
	if tv.validator.HasControlCharacters(description, true) {
		ve.AddInvalidCharacterError("description", nil)
	}
}

func (tv *TodoValidator) checkCategoryIDs(ve *ValidationError, ids []string) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !tv.validator.IsValidID(id) {
			ve.AddInvalidValueError("categoryIds", id, "not a valid id")
			continue
		}
		if seen[id] {
			ve.AddDuplicateError("categoryIds", id)
		}
		seen[id] = true
	}
}

// ValidateNewTodo validates user input for a todo about to be created.
// Status and priority may be left empty and are defaulted by the store.
func (tv *TodoValidator) ValidateNewTodo(input domain.NewTodo) error {
	validationError := NewValidationError()

	tv.checkTitle(validationError, "title", input.Title)
	tv.checkDescription(validationError, input.Description)

	if input.Status != "" && !input.Status.IsValid() {
		validationError.AddInvalidValueError("status", input.Status, "must be PENDING, IN_PROGRESS or COMPLETED")
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", input.Priority, "must be LOW, MEDIUM or HIGH")
	}
	if _, err := domain.NormalizeDueDate(input.DueDate); err != nil {
		validationError.AddInvalidFormatError("dueDate", input.DueDate, "RFC3339 timestamp or YYYY-MM-DD")
	}
	tv.checkCategoryIDs(validationError, input.CategoryIDs)

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTodo validates a complete todo record as sent over the wire
func (tv *TodoValidator) ValidateTodo(todo domain.Todo) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidID(todo.ID) {
		validationError.AddInvalidValueError("id", todo.ID, "not a valid id")
	}
	tv.checkTitle(validationError, "title", todo.Title)
	tv.checkDescription(validationError, todo.Description)

	if !todo.Status.IsValid() {
		validationError.AddInvalidValueError("status", todo.Status, "must be PENDING, IN_PROGRESS or COMPLETED")
	}
	if !todo.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", todo.Priority, "must be LOW, MEDIUM or HIGH")
	}
	if todo.CreatedAt.IsZero() {
		validationError.AddRequiredError("createdAt")
	}
	tv.checkCategoryIDs(validationError, todo.CategoryIDs)

	seen := make(map[string]bool, len(todo.Subtasks))
	for _, s := range todo.Subtasks {
		if !tv.validator.IsValidID(s.ID) {
			validationError.AddInvalidValueError("subtasks", s.ID, "not a valid id")
		} else if seen[s.ID] {
			validationError.AddDuplicateError("subtasks", s.ID)
		}
		seen[s.ID] = true
		tv.checkTitle(validationError, "subtasks.title", s.Title)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
