package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"reflect"

	"github.com/mind-engage/uc-planner/internal/validation"
)

const maxBodyBytes = 1 << 20

// Error codes carried in the "code" field of error bodies.
const (
	codeBadJSON            = "bad_json"
	codeValidation         = "validation_error"
	codeUnconvertible      = "unconvertible_score"
	codeNotFound           = "not_found"
	codeForbidden          = "forbidden"
	codeUnauthorized       = "unauthorized"
	codeUsernameTaken      = "username_taken"
	codeInvalidCredentials = "invalid_credentials"
	codeInternal           = "internal_error"
)

type errorBody struct {
	Message string                  `json:"message"`
	Code    string                  `json:"code,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorBody{Message: msg, Code: code})
}

// writeInvalid answers 400 with the field errors in err. msg defaults to
// "Validation error".
func writeInvalid(w http.ResponseWriter, err error, msg string) {
	if msg == "" {
		msg = "Validation error"
	}
	var ve *validation.Error
	if !errors.As(err, &ve) {
		writeErr(w, http.StatusBadRequest, msg, codeValidation)
		return
	}
	writeJSON(w, http.StatusBadRequest, errorBody{Message: msg, Code: codeValidation, Errors: ve.Fields})
}

// writeFailure logs the cause and answers 500 with a generic message.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log.Printf("%s %s: %s: %v", r.Method, r.URL.Path, msg, err)
	writeErr(w, http.StatusInternalServerError, msg, codeInternal)
}

// decodeJSON reads exactly one JSON value and rejects unknown fields. It
// writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil && dec.More() {
		err = errors.New("trailing data")
	}
	if err == nil {
		return true
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		var v validation.Error
		v.Add(te.Field, "Expected "+jsonKind(te.Type))
		writeInvalid(w, v.Err(), "")
		return false
	}
	writeErr(w, http.StatusBadRequest, "bad json", codeBadJSON)
	return false
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}

// required records a "Required" problem for every absent field.
func required(v *validation.Error, fields ...presence) {
	for _, f := range fields {
		if !f.ok {
			v.Add(f.name, "Required")
		}
	}
}

type presence struct {
	name string
	ok   bool
}

func field[T any](name string, p *T) presence { return presence{name: name, ok: p != nil} }

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
