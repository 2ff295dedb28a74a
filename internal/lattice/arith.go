package lattice

// Generic arithmetic over partial information. Each operation is a layered
// procedure: the base function below handles Number/Interval mixing, and
// the support layer rides along via the per-operation handlers in
// support.go. Nothing in, Nothing out: a propagator with a missing input
// produces no output rather than an error.

// Add is the generic addition procedure.
var Add = newArith("add", supportAdd, func(x, y Value) Value {
	if nx, ok := x.(Number); ok {
		if ny, ok := y.(Number); ok {
			return nx + ny
		}
	}
	ix, ok1 := ToInterval(x)
	iy, ok2 := ToInterval(y)
	if !ok1 || !ok2 {
		return TheContradiction
	}
	return ix.Add(iy)
})

// Subtract is the generic subtraction procedure.
var Subtract = newArith("subtract", supportAdd, func(x, y Value) Value {
	if nx, ok := x.(Number); ok {
		if ny, ok := y.(Number); ok {
			return nx - ny
		}
	}
	ix, ok1 := ToInterval(x)
	iy, ok2 := ToInterval(y)
	if !ok1 || !ok2 {
		return TheContradiction
	}
	return ix.Sub(iy)
})

// Multiply is the generic multiplication procedure.
var Multiply = newArith("multiply", supportMultiply, func(x, y Value) Value {
	if nx, ok := x.(Number); ok {
		if ny, ok := y.(Number); ok {
			return nx * ny
		}
	}
	ix, ok1 := ToInterval(x)
	iy, ok2 := ToInterval(y)
	if !ok1 || !ok2 {
		return TheContradiction
	}
	return ix.Mul(iy)
})

// Divide is the generic division procedure. Division by zero, or by an
// interval spanning zero, yields Nothing: the quotient cannot be
// determined yet, so dependent propagators simply stay quiet.
var Divide = newArith("divide", supportDivide, func(x, y Value) Value {
	if ny, ok := y.(Number); ok && ny == 0 {
		return TheNothing
	}
	if nx, ok := x.(Number); ok {
		if ny, ok := y.(Number); ok {
			return nx / ny
		}
	}
	ix, ok1 := ToInterval(x)
	iy, ok2 := ToInterval(y)
	if !ok1 || !ok2 {
		return TheContradiction
	}
	return ix.Div(iy)
})

// newArith builds a binary layered arithmetic procedure with the given
// support handler. The base function never sees Nothing: any Nothing
// operand short-circuits the whole application to Nothing.
func newArith(name string, handler LayerHandler, base func(x, y Value) Value) *LayeredProc {
	p := NewLayeredProc(name, 2, func(args ...Value) Value {
		for _, a := range args {
			if a == nil || IsNothing(a) {
				return TheNothing
			}
		}
		return base(args[0], args[1])
	})
	p.SetHandler(LayerSupport, handler)
	return p
}
