package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskmaster/internal/domain"
)

func TestCategoryValidator_ValidateName(t *testing.T) {
	cv := NewCategoryValidator()

	assert.NoError(t, cv.ValidateName("Work"))
	assert.Equal(t, []string{"name"}, fieldsOf(cv.ValidateName("  ")))
	assert.Equal(t, []string{"name"}, fieldsOf(cv.ValidateName(strings.Repeat("w", CategoryNameMaxLength+1))))
}

func TestCategoryValidator_ValidateCategory(t *testing.T) {
	cv := NewCategoryValidator()

	tests := []struct {
		name       string
		category   domain.Category
		wantFields []string
	}{
		{"valid", domain.Category{ID: "c1", Name: "Work", Color: "bg-blue-100 text-blue-800"}, nil},
		{"empty color allowed", domain.Category{ID: "c1", Name: "Work"}, nil},
		{"missing id and name", domain.Category{}, []string{"id", "name"}},
		{"control character in color", domain.Category{ID: "c1", Name: "Work", Color: "red\x07"}, []string{"color"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.ValidateCategory(tt.category)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fieldsOf(err))
		})
	}
}
