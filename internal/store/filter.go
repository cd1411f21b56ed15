package store

import (
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// filterDateLayout is the DD/MM/YYYY format accepted by the list endpoint.
const filterDateLayout = "02/01/2006"

// OpdFilter carries the optional list filters. Zero values mean "absent".
type OpdFilter struct {
	Q     string
	Date  string
	Page  int
	Limit int
}

// Normalize coerces page and limit into their allowed ranges. Out-of-range
// values are clamped, never rejected.
func (f *OpdFilter) Normalize() {
	if f.Limit == 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit < 1 {
		f.Limit = 1
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Page < 1 {
		f.Page = 1
	}
}

// ParseFilterDate parses a DD/MM/YYYY date filter. Impossible calendar
// dates (e.g. 31/02) are rejected along with malformed input.
func ParseFilterDate(s string) (time.Time, error) {
	t, err := time.Parse(filterDateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Message: "date must be in DD/MM/YYYY format"}
	}
	return t, nil
}
