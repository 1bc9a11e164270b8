package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lookup errors
	ErrLookupNotFound = errors.New("no unique reference row")

	// Validation errors
	ErrInvalidRequest = errors.New("invalid estimation request")

	// Reference data errors
	ErrTableLoad = errors.New("reference table load failed")
)

// LookupNotFoundError names the parameter combination that had no unique
// reference row. Matches is 0 when nothing matched and >1 when the table
// holds duplicates for the key.
type LookupNotFoundError struct {
	DocumentType    string
	Tool            string
	RevisionCount   int
	ComplexityClass string
	Matches         int
}

func (e *LookupNotFoundError) Error() string {
	reason := "no matching row"
	if e.Matches > 1 {
		reason = fmt.Sprintf("%d ambiguous rows", e.Matches)
	}
	return fmt.Sprintf("%v for document_type=%q tool=%q revisions=%d complexity=%q (%s)",
		ErrLookupNotFound, e.DocumentType, e.Tool, e.RevisionCount, e.ComplexityClass, reason)
}

func (e *LookupNotFoundError) Unwrap() error { return ErrLookupNotFound }

// ValidationError reports a structurally invalid request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidRequest, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// TableLoadError reports a malformed reference row. Row is 1-based and
// counts the header, so it matches the spreadsheet row number; 0 means the
// problem is not tied to a single row.
type TableLoadError struct {
	Source string
	Row    int
	Column string
	Reason string
}

func (e *TableLoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%v: %s row %d column %q: %s", ErrTableLoad, e.Source, e.Row, e.Column, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("%v: %s row %d: %s", ErrTableLoad, e.Source, e.Row, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%v: %s column %q: %s", ErrTableLoad, e.Source, e.Column, e.Reason)
	default:
		return fmt.Sprintf("%v: %s: %s", ErrTableLoad, e.Source, e.Reason)
	}
}

func (e *TableLoadError) Unwrap() error { return ErrTableLoad }

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func NewTableLoadError(source string, row int, column, reason string) error {
	return &TableLoadError{Source: source, Row: row, Column: column, Reason: reason}
}

// Error checking helpers
func IsLookupNotFound(err error) bool {
	return errors.Is(err, ErrLookupNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

func IsTableLoadError(err error) bool {
	return errors.Is(err, ErrTableLoad)
}
