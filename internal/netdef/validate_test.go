package netdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func validSpec() *NetSpec {
	return &NetSpec{
		Name:     "valid",
		Cells:    []CellSpec{{Name: "a"}, {Name: "b"}, {Name: "total"}},
		Premises: []string{"p1"},
		Propagators: []PropSpec{
			{Kind: KindSum, Cells: []string{"a", "b", "total"}},
		},
		Contents: []ContentSpec{
			{Cell: "a", Value: ValueSpec{Number: floatPtr(3)}, Supports: []string{"p1"}},
		},
	}
}

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidate_ValidSpec(t *testing.T) {
	assert.Empty(t, Validate(validSpec()))
}

func TestValidate_EmptyName(t *testing.T) {
	spec := validSpec()
	spec.Name = "   "

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrNetworkNameEmpty, errs[0].Code)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidate_NoCells(t *testing.T) {
	spec := &NetSpec{Name: "empty"}
	errs := Validate(spec)
	assert.Contains(t, codes(errs), ErrNoCells)
}

func TestValidate_DuplicateCell(t *testing.T) {
	spec := validSpec()
	spec.Cells = append(spec.Cells, CellSpec{Name: "a"})

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateCell, errs[0].Code)
	assert.Equal(t, "cells[3]", errs[0].Field)
}

func TestValidate_DuplicatePremise(t *testing.T) {
	spec := validSpec()
	spec.Premises = []string{"p1", "p1"}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicatePremise, errs[0].Code)
}

func TestValidate_UnknownKind(t *testing.T) {
	spec := validSpec()
	spec.Propagators = []PropSpec{{Kind: "frobnicator", Cells: []string{"a"}}}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnknownKind, errs[0].Code)
	assert.Contains(t, errs[0].Message, "frobnicator")
}

func TestValidate_WrongArity(t *testing.T) {
	spec := validSpec()
	spec.Propagators = []PropSpec{{Kind: KindSum, Cells: []string{"a", "b"}}}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrWrongArity, errs[0].Code)
}

func TestValidate_UnknownCellInPropagator(t *testing.T) {
	spec := validSpec()
	spec.Propagators = []PropSpec{{Kind: KindSum, Cells: []string{"a", "b", "missing"}}}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnknownCellRef, errs[0].Code)
	assert.Equal(t, "propagators[0].cells[2]", errs[0].Field)
}

func TestValidate_ConstantWithoutValue(t *testing.T) {
	spec := validSpec()
	spec.Propagators = []PropSpec{{Kind: KindConstant, Cells: []string{"a"}}}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrMissingConstValue, errs[0].Code)
}

func TestValidate_UnknownCellInContent(t *testing.T) {
	spec := validSpec()
	spec.Contents = []ContentSpec{
		{Cell: "missing", Value: ValueSpec{Number: floatPtr(1)}},
	}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnknownCellRef, errs[0].Code)
}

func TestValidate_UnknownPremiseInContent(t *testing.T) {
	spec := validSpec()
	spec.Contents = []ContentSpec{
		{Cell: "a", Value: ValueSpec{Number: floatPtr(1)}, Supports: []string{"ghost"}},
	}

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnknownPremiseRef, errs[0].Code)
}

func TestValidate_MalformedValue(t *testing.T) {
	spec := validSpec()
	spec.Contents = []ContentSpec{
		{Cell: "a", Value: ValueSpec{}},
		{Cell: "b", Value: ValueSpec{Number: floatPtr(1), Boolean: boolPtr(true)}},
	}

	errs := Validate(spec)
	require.Len(t, errs, 2)
	assert.Equal(t, ErrMalformedValue, errs[0].Code)
	assert.Equal(t, ErrMalformedValue, errs[1].Code)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	spec := &NetSpec{
		Name:        "",
		Propagators: []PropSpec{{Kind: "bogus"}},
	}

	errs := Validate(spec)
	assert.Contains(t, codes(errs), ErrNetworkNameEmpty)
	assert.Contains(t, codes(errs), ErrNoCells)
	assert.Contains(t, codes(errs), ErrUnknownKind)
}

func TestValidationError_Format(t *testing.T) {
	err := ValidationError{Field: "cells[0]", Message: "broken", Code: ErrDuplicateCell}
	assert.Equal(t, "[E102] cells[0]: broken", err.Error())
}
