package validation

import (
	"strings"
	"testing"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Empty string", "", false},
		{"Whitespace only", "   ", false},
		{"Tab and newline", "\t\n", false},
		{"Valid string", "hello", true},
		{"String with leading/trailing spaces", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsNonEmptyString(tt.input)
			if result != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsWithinLength(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		max      int
		expected bool
	}{
		{"Short", "abc", 5, true},
		{"Exactly max", "hello", 5, true},
		{"Too long", "hello!", 5, false},
		{"Spaces are trimmed", "  hello  ", 5, true},
		{"Multibyte counts runes", "ééééé", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsWithinLength(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("IsWithinLength(%q, %d) = %v, expected %v", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestValidator_HasControlCharacters(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name      string
		input     string
		multiline bool
		expected  bool
	}{
		{"Plain text", "buy milk", false, false},
		{"Newline in single line", "buy\nmilk", false, true},
		{"Newline in multiline", "buy\nmilk", true, false},
		{"Bell character", "ding\a", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.HasControlCharacters(tt.input, tt.multiline)
			if result != tt.expected {
				t.Errorf("HasControlCharacters(%q, %v) = %v, expected %v", tt.input, tt.multiline, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidID(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"6f1c2a10-3b7e-4c55-9a7e-0d1f2e3a4b5c", true},
		{"user-1", true},
		{" padded", false},
		{"a/b", false},
		{"a b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := validator.IsValidID(tt.input); result != tt.expected {
				t.Errorf("IsValidID(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidEmail(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"ada@example.com", true},
		{"  ada@example.com  ", true},
		{"ada", false},
		{"@example.com", false},
		{"ada@", false},
		{"a da@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := validator.IsValidEmail(tt.input); result != tt.expected {
				t.Errorf("IsValidEmail(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_TrimAndValidateString(t *testing.T) {
	validator := NewValidator()

	if got := validator.TrimAndValidateString("  x  "); got != "x" {
		t.Errorf("TrimAndValidateString() = %q, expected %q", got, "x")
	}
	if got := validator.TrimAndValidateString(strings.Repeat(" ", 3)); got != "" {
		t.Errorf("TrimAndValidateString() = %q, expected empty", got)
	}
}
