package domain

import (
	"fmt"
	"strings"
	"time"
)

// dueDateLayouts are tried in order when normalizing user input.
// Date-only input is read as midnight UTC; inputs without a zone use UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NormalizeDueDate converts user input to an absolute UTC instant.
// Blank input yields nil: an absent due date stays absent.
func NormalizeDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			u := t.UTC()
			return &u, nil
		}
	}
	return nil, fmt.Errorf("invalid due date %q", raw)
}
