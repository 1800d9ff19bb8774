package domain

import (
	"fmt"
	"strings"
)

// Filter selects which todos are visible by status.
// There is no in-progress filter; in-progress todos only show under FilterAll.
type Filter string

const (
	FilterAll       Filter = "ALL"
	FilterPending   Filter = "PENDING"
	FilterCompleted Filter = "COMPLETED"
)

// ParseFilter accepts ALL, PENDING or COMPLETED in any case.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ALL":
		return FilterAll, nil
	case "PENDING":
		return FilterPending, nil
	case "COMPLETED", "DONE":
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, pending or completed)", s)
}

// SortKey selects the ordering of visible todos.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByDueDate   SortKey = "dueDate"
	SortByPriority  SortKey = "priority"
)

// ParseSortKey accepts the wire form or a kebab/snake spelling.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s))) {
	case "", "createdat", "created":
		return SortByCreatedAt, nil
	case "duedate", "due":
		return SortByDueDate, nil
	case "priority":
		return SortByPriority, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want createdAt, dueDate or priority)", s)
}

// ViewSettings is presentation state only; it is never sent to the server.
type ViewSettings struct {
	Filter          Filter
	SortBy          SortKey
	GroupByCategory bool
}

// DefaultViewSettings shows everything, newest first, ungrouped.
func DefaultViewSettings() ViewSettings {
	return ViewSettings{
		Filter: FilterAll,
		SortBy: SortByCreatedAt,
	}
}
