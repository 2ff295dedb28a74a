package netdef

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileNetwork parses a CUE value into a NetSpec.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the network struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`network: { name: "temps", ... }`)
//	spec, err := CompileNetwork(v.LookupPath(cue.ParsePath("network")))
func CompileNetwork(v cue.Value) (*NetSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &NetSpec{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	spec.Name = name

	spec.Cells, err = parseCells(v)
	if err != nil {
		return nil, err
	}
	if len(spec.Cells) == 0 {
		return nil, &CompileError{
			Field:   "cells",
			Message: "at least one cell is required",
			Pos:     v.Pos(),
		}
	}

	spec.Premises, err = parseStringList(v, "premises")
	if err != nil {
		return nil, err
	}

	spec.Propagators, err = parsePropagators(v)
	if err != nil {
		return nil, err
	}

	spec.Contents, err = parseContents(v)
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// CompileSource compiles a CUE source string and extracts the network
// definition at the "network" path.
func CompileSource(filename, src string) (*NetSpec, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	netVal := v.LookupPath(cue.ParsePath("network"))
	if !netVal.Exists() {
		return nil, &CompileError{
			Field:   "network",
			Message: "no network definition found",
			Pos:     v.Pos(),
		}
	}
	return CompileNetwork(netVal)
}

// parseCells extracts cell declarations. Cells may be declared as a list
// of names or as a struct keyed by name.
func parseCells(v cue.Value) ([]CellSpec, error) {
	var cells []CellSpec

	cellsVal := v.LookupPath(cue.ParsePath("cells"))
	if !cellsVal.Exists() {
		return cells, nil
	}

	// Try as list of names first.
	if listIter, err := cellsVal.List(); err == nil {
		for listIter.Next() {
			name, err := listIter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			cells = append(cells, CellSpec{Name: name})
		}
		return cells, nil
	}

	// Struct form: cells: { f: {}, c: {} }
	iter, err := cellsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		cells = append(cells, CellSpec{Name: iter.Label()})
	}
	return cells, nil
}

// parseStringList reads an optional list of strings at the given path.
func parseStringList(v cue.Value, path string) ([]string, error) {
	var out []string

	listVal := v.LookupPath(cue.ParsePath(path))
	if !listVal.Exists() {
		return out, nil
	}

	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// parsePropagators extracts propagator declarations.
func parsePropagators(v cue.Value) ([]PropSpec, error) {
	var props []PropSpec

	propsVal := v.LookupPath(cue.ParsePath("propagators"))
	if !propsVal.Exists() {
		return props, nil
	}

	iter, err := propsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		propVal := iter.Value()

		kind, err := propVal.LookupPath(cue.ParsePath("kind")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}

		prop := PropSpec{Kind: kind}

		prop.Cells, err = parseStringList(propVal, "cells")
		if err != nil {
			return nil, err
		}

		// Constant carries its value inline and may name its single cell
		// either in the cells list or via a "cell" shorthand.
		if kind == KindConstant {
			cellVal := propVal.LookupPath(cue.ParsePath("cell"))
			if cellVal.Exists() {
				cell, err := cellVal.String()
				if err != nil {
					return nil, formatCUEError(err)
				}
				prop.Cells = append(prop.Cells, cell)
			}

			valueVal := propVal.LookupPath(cue.ParsePath("value"))
			if !valueVal.Exists() {
				return nil, &CompileError{
					Field:   "propagators.value",
					Message: "constant propagator requires a value",
					Pos:     propVal.Pos(),
				}
			}
			vs, err := parseValue(valueVal)
			if err != nil {
				return nil, err
			}
			prop.Value = &vs
		}

		props = append(props, prop)
	}

	return props, nil
}

// parseContents extracts initial content additions.
func parseContents(v cue.Value) ([]ContentSpec, error) {
	var contents []ContentSpec

	contentsVal := v.LookupPath(cue.ParsePath("contents"))
	if !contentsVal.Exists() {
		return contents, nil
	}

	iter, err := contentsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		entryVal := iter.Value()

		cell, err := entryVal.LookupPath(cue.ParsePath("cell")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}

		valueVal := entryVal.LookupPath(cue.ParsePath("value"))
		if !valueVal.Exists() {
			return nil, &CompileError{
				Field:   "contents.value",
				Message: "content entry requires a value",
				Pos:     entryVal.Pos(),
			}
		}
		vs, err := parseValue(valueVal)
		if err != nil {
			return nil, err
		}

		supports, err := parseStringList(entryVal, "supports")
		if err != nil {
			return nil, err
		}

		contents = append(contents, ContentSpec{
			Cell:     cell,
			Value:    vs,
			Supports: supports,
		})
	}

	return contents, nil
}

// parseValue converts a CUE value into a ValueSpec. Numbers and booleans
// are written bare; intervals as {lo: ..., hi: ...}.
func parseValue(v cue.Value) (ValueSpec, error) {
	var vs ValueSpec

	switch v.Kind() {
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return vs, formatCUEError(err)
		}
		vs.Boolean = &b
		return vs, nil

	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return vs, formatCUEError(err)
		}
		vs.Number = &f
		return vs, nil

	case cue.StructKind:
		loVal := v.LookupPath(cue.ParsePath("lo"))
		hiVal := v.LookupPath(cue.ParsePath("hi"))
		if !loVal.Exists() || !hiVal.Exists() {
			return vs, &CompileError{
				Field:   "value",
				Message: "interval value requires lo and hi fields",
				Pos:     v.Pos(),
			}
		}
		lo, err := loVal.Float64()
		if err != nil {
			return vs, formatCUEError(err)
		}
		hi, err := hiVal.Float64()
		if err != nil {
			return vs, formatCUEError(err)
		}
		vs.Interval = &IntervalSpec{Lo: lo, Hi: hi}
		return vs, nil

	default:
		return vs, &CompileError{
			Field:   "value",
			Message: fmt.Sprintf("unsupported value kind: %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
