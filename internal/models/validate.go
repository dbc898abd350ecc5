package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput matches every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// DateLayout is the calendar date format used for transaction and budget dates.
const DateLayout = "2006-01-02"

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(field, s string) error {
	if s == "" {
		return invalid(field, "is required")
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return invalid(field, "must be a YYYY-MM-DD date")
	}
	return nil
}
