package validation

import (
	"taskmaster/internal/domain"
)

// CategoryValidator provides validation for categories
type CategoryValidator struct {
	validator *Validator
}

// NewCategoryValidator creates a new category validator
func NewCategoryValidator() *CategoryValidator {
	return &CategoryValidator{
		validator: NewValidator(),
	}
}

// ValidateName validates a category name
func (cv *CategoryValidator) ValidateName(name string) error {
	validationError := NewValidationError()
	cv.checkName(validationError, name)
	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func (cv *CategoryValidator) checkName(ve *ValidationError, name string) {
	trimmed := cv.validator.TrimAndValidateString(name)
	if !cv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("name")
		return
	}
	if !cv.validator.IsWithinLength(trimmed, CategoryNameMaxLength) {
		ve.AddInvalidLengthError("name", trimmed, CategoryNameMaxLength)
	}
	if cv.validator.HasControlCharacters(trimmed, false) {
		ve.AddInvalidCharacterError("name", trimmed)
	}
}

// ValidateCategory validates a complete category record. An empty color is
// accepted and replaced by the default.
func (cv *CategoryValidator) ValidateCategory(category domain.Category) error {
	validationError := NewValidationError()

	if !cv.validator.IsValidID(category.ID) {
		validationError.AddInvalidValueError("id", category.ID, "not a valid id")
	}
	cv.checkName(validationError, category.Name)
	if cv.validator.HasControlCharacters(category.Color, false) {
		validationError.AddInvalidCharacterError("color", category.Color)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
