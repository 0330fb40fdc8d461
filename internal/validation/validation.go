// Package validation collects field-level input errors.
package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every field problem found in an input. A sentinel cause,
// when set, is reachable through errors.Is.
type Error struct {
	Fields []FieldError
	cause  error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return e.cause }

// Add records a field problem.
func (e *Error) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// AddCause records a field problem that corresponds to a sentinel error.
func (e *Error) AddCause(field string, cause error) {
	e.Add(field, cause.Error())
	if e.cause == nil {
		e.cause = cause
	}
}

// Merge appends the field problems of err for fields not already reported
// and reports whether err was an *Error.
func (e *Error) Merge(err error) bool {
	var o *Error
	if !errors.As(err, &o) {
		return false
	}
	for _, f := range o.Fields {
		if !e.Has(f.Field) {
			e.Fields = append(e.Fields, f)
		}
	}
	if e.cause == nil {
		e.cause = o.cause
	}
	return true
}

// Has reports whether field already has a problem recorded.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when nothing was recorded.
func (e *Error) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Required flags blank strings.
func (e *Error) Required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, msg)
	}
}

// IsEmail reports whether s is a bare address like "a@b.org".
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}
