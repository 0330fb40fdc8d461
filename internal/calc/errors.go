package calc

import (
	"errors"

	"github.com/mind-engage/uc-planner/internal/validation"
)

var (
	// ErrWeightSum is returned when the current and final weights do not add up to 100.
	ErrWeightSum = errors.New("current grade weight and final exam weight must sum to 100%")
	// ErrUnconvertible means the score is well-formed but has no concordance entry.
	ErrUnconvertible = errors.New("unable to convert score: invalid score range")
)

type (
	ValidationError = validation.Error
	FieldError      = validation.FieldError
)
