// SPDX-License-Identifier: MIT

package pareto

import "fmt"

// ErrorKind classifies the errors returned by this package's containers.
type ErrorKind uint8

const (
	// DimensionMismatch is returned when a key's dimension disagrees with
	// the container's dimension, or a direction vector's length disagrees
	// with the dimension it is meant to describe.
	DimensionMismatch ErrorKind = iota + 1

	// KeyNotFound names an absent-key error. No container in this package
	// returns it: Find reports an absent key with ok=false.
	KeyNotFound

	// InvalidDirectionToken is returned when a textual direction is not
	// one of the recognized tokens ("min", "minimization", "max",
	// "maximization").
	InvalidDirectionToken

	// CapacityInvariant is returned when an archive's capacity is set to
	// zero while an insertion is attempted, or an internal bookkeeping
	// invariant would otherwise be violated.
	CapacityInvariant

	// EmptyContainer is returned by reference-point and indicator queries
	// that require at least one stored entry.
	EmptyContainer

	// ReferencePointInvalid is returned when a hypervolume reference point
	// is not strictly worse than every stored key.
	ReferencePointInvalid
)

// String renders the error kind for diagnostics and %v formatting.
func (k ErrorKind) String() string {
	switch k {
	case DimensionMismatch:
		return "dimension mismatch"
	case KeyNotFound:
		return "key not found"
	case InvalidDirectionToken:
		return "invalid direction token"
	case CapacityInvariant:
		return "capacity invariant violated"
	case EmptyContainer:
		return "container is empty"
	case ReferencePointInvalid:
		return "reference point is not strictly worse than every stored key"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by this package. Op names the
// failing operation (e.g. "Front.Insert"), Kind classifies the failure and
// Err, when non-nil, wraps an underlying cause.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pareto: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("pareto: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, pareto.ErrKeyNotFound) style checks via the sentinel
// values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors, usable with errors.Is against any *Error of matching Kind.
var (
	ErrDimensionMismatch     = &Error{Kind: DimensionMismatch}
	ErrKeyNotFound           = &Error{Kind: KeyNotFound}
	ErrInvalidDirectionToken = &Error{Kind: InvalidDirectionToken}
	ErrCapacityInvariant     = &Error{Kind: CapacityInvariant}
	ErrEmptyContainer        = &Error{Kind: EmptyContainer}
	ErrReferencePointInvalid = &Error{Kind: ReferencePointInvalid}
)

func newError(op string, kind ErrorKind) *Error {
	return &Error{Op: op, Kind: kind}
}

func wrapError(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}
