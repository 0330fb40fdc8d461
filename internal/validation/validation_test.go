package validation_test

import (
	"errors"
	"testing"

	"github.com/mind-engage/uc-planner/internal/validation"
)

func TestErr_NilWhenEmpty(t *testing.T) {
	var v validation.Error
	if v.Err() != nil {
		t.Fatal("empty Error should produce nil")
	}
	v.Required("name", "  ", "Name is required")
	if v.Err() == nil || len(v.Fields) != 1 {
		t.Fatalf("expected one field error, got %+v", v.Fields)
	}
}

func TestAddCause(t *testing.T) {
	sentinel := errors.New("sentinel")
	var v validation.Error
	v.AddCause("x", sentinel)
	if !errors.Is(v.Err(), sentinel) {
		t.Fatal("cause not reachable through errors.Is")
	}
	if got := v.Error(); got != "validation error: x: sentinel" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestIsEmail(t *testing.T) {
	good := []string{"student@school.edu", "a.b+c@example.org"}
	bad := []string{"", "nope", "Name <a@b.org>", "a@localhost", "@b.org"}
	for _, s := range good {
		if !validation.IsEmail(s) {
			t.Fatalf("IsEmail(%q) = false", s)
		}
	}
	for _, s := range bad {
		if validation.IsEmail(s) {
			t.Fatalf("IsEmail(%q) = true", s)
		}
	}
}

func TestMerge(t *testing.T) {
	sentinel := errors.New("sentinel")
	var inner validation.Error
	inner.AddCause("a", sentinel)
	inner.Add("b", "second opinion")

	var outer validation.Error
	outer.Add("b", "bad")
	if !outer.Merge(inner.Err()) {
		t.Fatal("merge should accept *Error")
	}
	if outer.Merge(errors.New("plain")) {
		t.Fatal("merge should reject other errors")
	}
	want := []validation.FieldError{{Field: "b", Message: "bad"}, {Field: "a", Message: "sentinel"}}
	if len(outer.Fields) != 2 || outer.Fields[0] != want[0] || outer.Fields[1] != want[1] {
		t.Fatalf("merged = %+v", outer.Fields)
	}
	if !errors.Is(outer.Err(), sentinel) || !outer.Has("a") || outer.Has("c") {
		t.Fatal("merged cause or fields lost")
	}
}
