package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "Valid time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45.000000000Z",
		},
		{
			name:     "Time with timezone is stored in UTC",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T19:30:00.000000000Z",
		},
		{
			name:     "Time with nanoseconds",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2024-03-10T09:15:30.123456789Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimeForDB_SortsLexically(t *testing.T) {
	earlier := FormatTimeForDB(time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC))
	later := FormatTimeForDB(time.Date(2024, 1, 15, 10, 30, 45, 500000000, time.UTC))

	assert.Less(t, earlier, later)
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15T00:00:00.000000000Z", FormatTimePtrForDB(&due))
}

func TestParseTimeFromDB(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "Plain RFC3339",
			input:    "2024-01-15T10:30:45Z",
			expected: time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "RFC3339 with offset",
			input:    "2024-06-15T14:30:00-05:00",
			expected: time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC),
		},
		{
			name:     "Fixed width nanoseconds",
			input:    "2024-03-10T09:15:30.123456789Z",
			expected: time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
		},
		{
			name:        "Invalid time format",
			input:       "2024-01-15 10:30:45",
			expectError: true,
		},
		{
			name:        "Empty string",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimeFromDB(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
		})
	}
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2024, 1, 15, 10, 30, 45, 987654321, time.UTC)

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))

	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}

func TestParseNullTimeFromDB(t *testing.T) {
	result, err := ParseNullTimeFromDB(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = ParseNullTimeFromDB(sql.NullString{String: "2024-01-15T00:00:00Z", Valid: true})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).Equal(*result))

	_, err = ParseNullTimeFromDB(sql.NullString{String: "tomorrow", Valid: true})
	assert.Error(t, err)
}
