// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"errors"
	"time"
)

// DateLayout is the calendar date format used in requests and responses.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
	// Available is set on insufficient funds errors.
	Available *int64 `json:"available,omitempty"`
}

// SuccessResponse is returned by operations with no other payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

var errInvalidDate = errors.New("date must be YYYY-MM-DD or RFC 3339")

// ParseDate accepts a calendar date or a full RFC 3339 timestamp and returns it in UTC.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errInvalidDate
}

// ParseOptionalDate parses value unless it is nil or empty.
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders an optional date as YYYY-MM-DD.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}
