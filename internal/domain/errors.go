package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for broad classification.
var (
	ErrValidation      = errors.New("validation failed")
	ErrReference       = errors.New("unknown reference")
	ErrConsistency     = errors.New("consistency violated")
	ErrArithmeticGuard = errors.New("arithmetic guard tripped")
)

// ValidationError describes a single rejected input field. Violations are
// always reported together so a caller can fix them in one pass.
type ValidationError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Reason, e.Value)
}

func (e ValidationError) Unwrap() error { return ErrValidation }

// ValidationErrors aggregates every problem found in a snapshot — field
// violations and unresolved person references alike — so the caller can
// surface them together instead of fixing one at a time.
type ValidationErrors struct {
	Violations []ValidationError
	References []ReferenceError
}

func (e *ValidationErrors) Error() string {
	if e == nil || (len(e.Violations) == 0 && len(e.References) == 0) {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations)+len(e.References))
	for _, v := range e.Violations {
		parts = append(parts, v.Error())
	}
	for _, r := range e.References {
		parts = append(parts, r.Error())
	}
	return fmt.Sprintf("validation failed (%d): %s", len(parts), strings.Join(parts, "; "))
}

// Empty reports whether no problems were recorded.
func (e *ValidationErrors) Empty() bool {
	return len(e.Violations) == 0 && len(e.References) == 0
}

// Unwrap exposes the error classes present so errors.Is works for both
// ErrValidation and ErrReference.
func (e *ValidationErrors) Unwrap() []error {
	out := []error{}
	if len(e.Violations) > 0 {
		out = append(out, ErrValidation)
	}
	if len(e.References) > 0 {
		out = append(out, ErrReference)
	}
	return out
}

// ReferenceError reports a goal naming a person absent from the roster.
// Raised before any computation begins.
type ReferenceError struct {
	GoalID     string
	PersonName string
}

func (e ReferenceError) Error() string {
	return fmt.Sprintf("goal %s references unknown family member %q", e.GoalID, e.PersonName)
}

func (e ReferenceError) Unwrap() error { return ErrReference }

// ConsistencyError reports a cross-section invariant that failed the
// post-computation audit. Reaching it with validated input is an engine
// defect; the whole analysis is discarded.
type ConsistencyError struct {
	Invariant string
	Detail    string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency check %s failed: %s", e.Invariant, e.Detail)
}

func (e *ConsistencyError) Unwrap() error { return ErrConsistency }

// ArithmeticGuardError reports a would-be NaN/Infinity from degenerate
// inputs that slipped validation.
type ArithmeticGuardError struct {
	Step string
	Err  error
}

func (e *ArithmeticGuardError) Error() string {
	return fmt.Sprintf("arithmetic guard at %s: %v", e.Step, e.Err)
}

func (e *ArithmeticGuardError) Unwrap() error { return ErrArithmeticGuard }
