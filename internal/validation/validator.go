// Package validation checks todos, categories and login input before they
// reach the store or the database.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	TitleMaxLength        = 255
	DescriptionMaxLength  = 2000
	CategoryNameMaxLength = 50
	DisplayNameMaxLength  = 100
	EmailMaxLength        = 254
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength reports whether the trimmed string has at most max characters
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// HasControlCharacters reports whether s contains characters that break
// single-line display. Newlines are allowed only when multiline is set.
func (v *Validator) HasControlCharacters(s string, multiline bool) bool {
	for _, r := range s {
		if multiline && (r == '\n' || r == '\r' || r == '\t') {
			continue
		}
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// IsValidID checks an opaque identifier: non-empty and safe to put in a URL path
func (v *Validator) IsValidID(id string) bool {
	if id == "" || strings.TrimSpace(id) != id {
		return false
	}
	return !strings.ContainsAny(id, "/?# \t\n")
}

// IsValidEmail performs the loose check used at login: one @ with text on both sides
func (v *Validator) IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t\n")
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
