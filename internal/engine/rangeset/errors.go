package rangeset

import (
	"errors"
	"fmt"
)

// Errors returned by set operations.
var (
	// ErrNotFound indicates a record that is not part of the set.
	ErrNotFound = errors.New("range not found")

	// ErrInternalInconsistency indicates the set violated its own invariants.
	// It points to a defect in the engine rather than caller misuse.
	ErrInternalInconsistency = errors.New("internal inconsistency")

	// ErrAlreadyOwned indicates a record that already belongs to another set.
	ErrAlreadyOwned = errors.New("record belongs to another set")
)

// InconsistencyError describes a broken invariant.
type InconsistencyError struct {
	// Op is the operation that detected the problem.
	Op string
	// Detail describes what was found.
	Detail string
}

// Error implements the error interface.
func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInternalInconsistency, e.Op, e.Detail)
}

// Is allows errors.Is to match InconsistencyError with ErrInternalInconsistency.
func (e *InconsistencyError) Is(target error) bool {
	return target == ErrInternalInconsistency
}
