package engine

import "fmt"

type ErrorKind string

const (
	ErrValidation  ErrorKind = "validation"
	ErrNotFound    ErrorKind = "not_found"
	ErrConsistency ErrorKind = "consistency"
	ErrStorage     ErrorKind = "storage"
)

// Error is the typed result every engine operation fails with. Field is
// set for validation errors so the boundary can point at the offending
// input.
type Error struct {
	Kind   ErrorKind
	Field  string
	Detail string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Detail, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func Validation(field, detail string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Detail: detail}
}

func NotFound(detail string) *Error {
	return &Error{Kind: ErrNotFound, Detail: detail}
}

func Consistency(detail string) *Error {
	return &Error{Kind: ErrConsistency, Detail: detail}
}

func Storage(detail string, cause error) *Error {
	if cause != nil {
		detail = fmt.Sprintf("%s: %v", detail, cause)
	}
	return &Error{Kind: ErrStorage, Detail: detail}
}
