package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName rejects a name that normalizes to nothing.
	ErrEmptyName = errors.New("invalid recipe name")

	// ErrInvalidBody is returned by ParseEntry when the body is not a JSON object.
	ErrInvalidBody = errors.New("request must be a JSON object")

	// Register rejections, in the order the checks run. Each is carried as the
	// Kind of a *ValidationError.
	ErrMissingFields        = errors.New("required fields not present")
	ErrInvalidType          = errors.New("invalid entry type")
	ErrDuplicateName        = errors.New("entry already exists")
	ErrInvalidCookTime      = errors.New("cook time must be a non-negative integer")
	ErrInvalidRequiredItems = errors.New("required items must be a list of uniquely named items with positive integer quantities")

	// Summarize failures.
	ErrNotFound            = errors.New("recipe not found in cookbook")
	ErrUnresolvedReference = errors.New("item not found in cookbook")
	ErrCyclicReference     = errors.New("recipe requires itself")
	ErrQuantityOverflow    = errors.New("recipe totals exceed the supported range")
)

// ValidationError reports why Register rejected an entry. Kind is one of the
// ErrMissingFields..ErrInvalidRequiredItems sentinels.
type ValidationError struct {
	Kind   error
	Detail string
}

func invalid(kind error, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Reason is a short label for the failure kind, used as a metrics label.
func (e *ValidationError) Reason() string {
	switch e.Kind {
	case ErrMissingFields:
		return "missing_fields"
	case ErrInvalidType:
		return "invalid_type"
	case ErrDuplicateName:
		return "duplicate_name"
	case ErrInvalidCookTime:
		return "invalid_cook_time"
	case ErrInvalidRequiredItems:
		return "invalid_required_items"
	default:
		return "unknown"
	}
}

// UnresolvedReferenceError means Recipe requires Name but no entry by that name
// is registered.
type UnresolvedReferenceError struct {
	Name   string
	Recipe string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: %q required by %q", ErrUnresolvedReference, e.Name, e.Recipe)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// CyclicReferenceError carries the expansion path that led back to a recipe
// already being expanded. The last element repeats an earlier one.
type CyclicReferenceError struct {
	Path []string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicReference, strings.Join(e.Path, " -> "))
}

func (e *CyclicReferenceError) Unwrap() error { return ErrCyclicReference }
