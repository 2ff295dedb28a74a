package netdef

import (
	"fmt"
	"strings"
)

// Validation error codes (E100-E199)
const (
	ErrNetworkNameEmpty  = "E100" // name is required
	ErrNoCells           = "E101" // at least one cell required
	ErrDuplicateCell     = "E102" // duplicate cell name
	ErrDuplicatePremise  = "E103" // duplicate premise name
	ErrUnknownKind       = "E110" // unrecognized propagator kind
	ErrWrongArity        = "E111" // wrong cell count for kind
	ErrUnknownCellRef    = "E112" // propagator or content names an undeclared cell
	ErrMissingConstValue = "E113" // constant propagator without a value
	ErrUnknownPremiseRef = "E120" // content names an undeclared premise
	ErrMalformedValue    = "E121" // value spec sets zero or several variants
)

// ValidationError represents a definition validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled NetSpec against structural rules.
// Returns all errors found (does not fail-fast).
func Validate(spec *NetSpec) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(spec.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required and must be non-empty",
			Code:    ErrNetworkNameEmpty,
		})
	}

	if len(spec.Cells) == 0 {
		errs = append(errs, ValidationError{
			Field:   "cells",
			Message: "at least one cell is required",
			Code:    ErrNoCells,
		})
	}

	cellNames := make(map[string]bool)
	for i, cell := range spec.Cells {
		if cellNames[cell.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("cells[%d]", i),
				Message: fmt.Sprintf("duplicate cell name: %q", cell.Name),
				Code:    ErrDuplicateCell,
			})
		}
		cellNames[cell.Name] = true
	}

	premiseNames := make(map[string]bool)
	for i, name := range spec.Premises {
		if premiseNames[name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("premises[%d]", i),
				Message: fmt.Sprintf("duplicate premise name: %q", name),
				Code:    ErrDuplicatePremise,
			})
		}
		premiseNames[name] = true
	}

	for i, prop := range spec.Propagators {
		arity, ok := kindArity[prop.Kind]
		if !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("propagators[%d].kind", i),
				Message: fmt.Sprintf("unrecognized kind: %q", prop.Kind),
				Code:    ErrUnknownKind,
			})
			continue
		}

		if len(prop.Cells) != arity {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("propagators[%d].cells", i),
				Message: fmt.Sprintf("kind %q requires %d cells, got %d", prop.Kind, arity, len(prop.Cells)),
				Code:    ErrWrongArity,
			})
		}

		for j, cell := range prop.Cells {
			if !cellNames[cell] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("propagators[%d].cells[%d]", i, j),
					Message: fmt.Sprintf("undeclared cell: %q", cell),
					Code:    ErrUnknownCellRef,
				})
			}
		}

		if prop.Kind == KindConstant {
			if prop.Value == nil {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("propagators[%d].value", i),
					Message: "constant propagator requires a value",
					Code:    ErrMissingConstValue,
				})
			} else if err := validateValue(*prop.Value, fmt.Sprintf("propagators[%d].value", i)); err != nil {
				errs = append(errs, *err)
			}
		}
	}

	for i, content := range spec.Contents {
		if !cellNames[content.Cell] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("contents[%d].cell", i),
				Message: fmt.Sprintf("undeclared cell: %q", content.Cell),
				Code:    ErrUnknownCellRef,
			})
		}
		if err := validateValue(content.Value, fmt.Sprintf("contents[%d].value", i)); err != nil {
			errs = append(errs, *err)
		}
		for j, premise := range content.Supports {
			if !premiseNames[premise] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("contents[%d].supports[%d]", i, j),
					Message: fmt.Sprintf("undeclared premise: %q", premise),
					Code:    ErrUnknownPremiseRef,
				})
			}
		}
	}

	return errs
}

// validateValue checks that exactly one variant of a ValueSpec is set.
func validateValue(vs ValueSpec, field string) *ValidationError {
	set := 0
	if vs.Number != nil {
		set++
	}
	if vs.Boolean != nil {
		set++
	}
	if vs.Interval != nil {
		set++
	}
	if set != 1 {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("value must set exactly one of number, boolean, interval (got %d)", set),
			Code:    ErrMalformedValue,
		}
	}
	return nil
}
