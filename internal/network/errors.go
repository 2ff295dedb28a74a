package network

import (
	"errors"
	"fmt"

	"github.com/roach88/propnet/internal/lattice"
)

// RuntimeError represents an error detected while mutating or wiring a
// network.
//
// Runtime errors include:
//   - Contradiction: a cell write could not be reconciled with the cell's
//     current content
//   - Bad wiring: a propagator constructor was given too few cells, or
//     cells from different networks
//   - Unknown premise: a toggle referenced a premise name never created
//
// RuntimeError includes structured fields for diagnostics.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Cell names the affected cell (for contradiction errors).
	Cell string

	// Old and New are the irreconcilable values, formatted (for
	// contradiction errors).
	Old string
	New string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeContradiction indicates a cell write conflicted with the
	// cell's current content. The write did not happen.
	ErrCodeContradiction RuntimeErrorCode = "CONTRADICTION"

	// ErrCodeBadWiring indicates a propagator could not be constructed.
	ErrCodeBadWiring RuntimeErrorCode = "BAD_WIRING"

	// ErrCodeUnknownPremise indicates a named premise does not exist.
	ErrCodeUnknownPremise RuntimeErrorCode = "UNKNOWN_PREMISE"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("%s: %s (cell=%s, old=%s, new=%s)", e.Code, e.Message, e.Cell, e.Old, e.New)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewContradictionError creates a RuntimeError for an irreconcilable cell
// write. The cell's prior content is always preserved.
func NewContradictionError(cell string, old, increment lattice.Value) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeContradiction,
		Message: "cannot reconcile new content with cell's current content",
		Cell:    cell,
		Old:     lattice.Format(old),
		New:     lattice.Format(increment),
	}
}

// NewWiringError creates a RuntimeError for a misconstructed propagator.
func NewWiringError(msg string) *RuntimeError {
	return &RuntimeError{Code: ErrCodeBadWiring, Message: msg}
}

// NewUnknownPremiseError creates a RuntimeError for a premise name that
// was never registered.
func NewUnknownPremiseError(name string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeUnknownPremise,
		Message: fmt.Sprintf("no premise named %q", name),
	}
}

// IsContradiction returns true if the error is a contradiction error.
// Uses errors.As to handle wrapped errors.
func IsContradiction(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeContradiction
	}
	return false
}
