package sqlite

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		case *int:
			*v = ts.data[i].(int)
		case *bool:
			*v = ts.data[i].(bool)
		}
	}

	return nil
}

// TestRows replays a fixed list of scanners
type TestRows struct {
	rows []*TestScanner
	pos  int
	err  error
}

func (tr *TestRows) Next() bool {
	if tr.pos >= len(tr.rows) {
		return false
	}
	tr.pos++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return tr.rows[tr.pos-1].Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func todoRow(id, createdAt string, due sql.NullString) *TestScanner {
	return &TestScanner{data: []interface{}{
		id, "Title " + id, sql.NullString{String: "desc", Valid: true}, "PENDING", "HIGH", createdAt, "user-1", due,
	}}
}

func TestScanTodo(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		wantDue     *time.Time
		expectError bool
	}{
		{
			name:    "Todo with due date",
			scanner: todoRow("t1", "2024-01-15T10:00:00Z", sql.NullString{String: "2024-02-01T00:00:00Z", Valid: true}),
			wantDue: func() *time.Time { t := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC); return &t }(),
		},
		{
			name:    "Todo without due date",
			scanner: todoRow("t2", "2024-01-15T10:00:00Z", sql.NullString{}),
		},
		{
			name:        "Corrupt created_at",
			scanner:     todoRow("t3", "yesterday", sql.NullString{}),
			expectError: true,
		},
		{
			name:        "Scan error",
			scanner:     &TestScanner{err: errors.New("scan failed")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo, err := ScanTodo(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, todo)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "desc", todo.Description)
			assert.Equal(t, "PENDING", todo.Status)
			assert.True(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC).Equal(todo.CreatedAt))
			if tt.wantDue == nil {
				assert.Nil(t, todo.DueDate)
			} else {
				require.NotNil(t, todo.DueDate)
				assert.True(t, tt.wantDue.Equal(*todo.DueDate))
			}
		})
	}
}

func TestScanTodos(t *testing.T) {
	t.Run("empty result is an empty slice", func(t *testing.T) {
		todos, err := ScanTodos(&TestRows{})
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("rows error is returned", func(t *testing.T) {
		_, err := ScanTodos(&TestRows{err: errors.New("cursor broke")})
		assert.Error(t, err)
	})

	t.Run("multiple rows", func(t *testing.T) {
		rows := &TestRows{rows: []*TestScanner{
			todoRow("a", "2024-01-15T10:00:00Z", sql.NullString{}),
			todoRow("b", "2024-01-16T10:00:00Z", sql.NullString{}),
		}}
		todos, err := ScanTodos(rows)
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, "a", todos[0].ID)
		assert.Equal(t, "b", todos[1].ID)
	})
}

func TestScanSubtask(t *testing.T) {
	subtask, err := ScanSubtask(&TestScanner{data: []interface{}{"s1", "t1", 2, "draft", true}})

	require.NoError(t, err)
	assert.Equal(t, &Subtask{ID: "s1", TodoID: "t1", Position: 2, Title: "draft", IsCompleted: true}, subtask)
}

func TestScanCategories(t *testing.T) {
	rows := &TestRows{rows: []*TestScanner{
		{data: []interface{}{"c1", "Work", "blue"}},
		{data: []interface{}{"c2", "Home", "red"}},
	}}

	categories, err := ScanCategories(rows)

	require.NoError(t, err)
	assert.Equal(t, []*Category{
		{ID: "c1", Name: "Work", Color: "blue"},
		{ID: "c2", Name: "Home", Color: "red"},
	}, categories)
}
