package sym

import "fmt"

// Equation is one assignment produced by the symbolic collaborator:
// a target access and an already-lowered right-hand side. The tree layer
// treats the RHS as opaque text; only the operand list matters to it.
type Equation struct {
	LHS   Indexed
	RHS   string
	reads []Indexed
}

// NewEquation builds an immutable equation. reads lists the accesses on
// the right-hand side in the order the collaborator derived them.
func NewEquation(lhs Indexed, rhs string, reads ...Indexed) Equation {
	rs := make([]Indexed, len(reads))
	copy(rs, reads)
	return Equation{LHS: lhs, RHS: rhs, reads: rs}
}

// Operands returns every access of the equation, write target first.
func (e Equation) Operands() []Indexed {
	ops := make([]Indexed, 0, len(e.reads)+1)
	ops = append(ops, e.LHS)
	ops = append(ops, e.reads...)
	return ops
}

func (e Equation) String() string {
	return fmt.Sprintf("%s = %s", e.LHS, e.RHS)
}
