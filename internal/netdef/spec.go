package netdef

// NetSpec is the compiled form of a network definition. It is a plain
// data description: cells, premises, propagators, and initial contents.
// Build turns a NetSpec into a live network.
type NetSpec struct {
	Name        string       `json:"name"`
	Cells       []CellSpec   `json:"cells"`
	Premises    []string     `json:"premises,omitempty"`
	Propagators []PropSpec   `json:"propagators"`
	Contents    []ContentSpec `json:"contents,omitempty"`
}

// CellSpec declares a named cell.
type CellSpec struct {
	Name string `json:"name"`
}

// PropSpec declares a propagator by kind. Cells are referenced by name;
// for directional kinds the last cell is the output.
type PropSpec struct {
	Kind  string   `json:"kind"`
	Cells []string `json:"cells"`

	// Value is only meaningful for kind "constant".
	Value *ValueSpec `json:"value,omitempty"`
}

// ContentSpec is an initial content addition to a cell, optionally
// supported by named premises.
type ContentSpec struct {
	Cell     string    `json:"cell"`
	Value    ValueSpec `json:"value"`
	Supports []string  `json:"supports,omitempty"`
}

// ValueSpec is the definition-level encoding of a cell value. Exactly one
// of the fields is set.
type ValueSpec struct {
	Number   *float64      `json:"number,omitempty"`
	Boolean  *bool         `json:"boolean,omitempty"`
	Interval *IntervalSpec `json:"interval,omitempty"`
}

// IntervalSpec is a closed interval [Lo, Hi].
type IntervalSpec struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Propagator kinds accepted in definitions. Directional kinds lift a
// function over their inputs; constraint kinds wire several directional
// propagators between the same cells.
const (
	KindAdder      = "adder"
	KindSubtractor = "subtractor"
	KindMultiplier = "multiplier"
	KindDivider    = "divider"
	KindConstant   = "constant"
	KindSwitch     = "switch"
	KindSum        = "sum"
	KindProduct    = "product"
	KindDifference = "difference"
	KindQuotient   = "quotient"
	KindFtoC       = "fahrenheit-celsius"
)

// kindArity maps each kind to its required cell count. Zero means the
// kind was not recognized.
var kindArity = map[string]int{
	KindAdder:      3,
	KindSubtractor: 3,
	KindMultiplier: 3,
	KindDivider:    3,
	KindConstant:   1,
	KindSwitch:     3,
	KindSum:        3,
	KindProduct:    3,
	KindDifference: 3,
	KindQuotient:   3,
	KindFtoC:       2,
}
