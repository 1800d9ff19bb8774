package validation

// LoginValidator validates the mock login form
type LoginValidator struct {
	validator *Validator
}

// NewLoginValidator creates a new login validator
func NewLoginValidator() *LoginValidator {
	return &LoginValidator{
		validator: NewValidator(),
	}
}

// ValidateLogin requires an email with an @ and a non-empty display name
func (lv *LoginValidator) ValidateLogin(email, name string) error {
	validationError := NewValidationError()

	email = lv.validator.TrimAndValidateString(email)
	switch {
	case !lv.validator.IsNonEmptyString(email):
		validationError.AddRequiredError("email")
	case !lv.validator.IsValidEmail(email):
		validationError.AddInvalidFormatError("email", email, "name@example.com")
	case !lv.validator.IsWithinLength(email, EmailMaxLength):
		validationError.AddInvalidLengthError("email", email, EmailMaxLength)
	}

	name = lv.validator.TrimAndValidateString(name)
	if !lv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	} else {
		if !lv.validator.IsWithinLength(name, DisplayNameMaxLength) {
			validationError.AddInvalidLengthError("name", name, DisplayNameMaxLength)
		}
		if lv.validator.HasControlCharacters(name, false) {
			validationError.AddInvalidCharacterError("name", name)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
