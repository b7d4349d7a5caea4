package api

import (
	"fmt"
	"time"
)

// dateFormat is the wire format for date fields in request bodies.
const dateFormat = "2006-01-02"

// parseDate parses a required YYYY-MM-DD date field.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// parseOptionalDate parses an optional YYYY-MM-DD date field. An empty value
// yields nil.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
