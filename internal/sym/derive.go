package sym

import (
	"fmt"

	"stencil/internal/space"
)

// DerivKind enumerates the derivative stencils the collaborator can supply.
type DerivKind uint8

const (
	DerivFirst DerivKind = iota
	DerivSecond
	DerivCross
	// DerivStaggered exists only one-sided; it has no centered analogue.
	DerivStaggered
)

func (k DerivKind) String() string {
	switch k {
	case DerivFirst:
		return "first"
	case DerivSecond:
		return "second"
	case DerivCross:
		return "cross"
	case DerivStaggered:
		return "staggered"
	default:
		return fmt.Sprintf("deriv#%d", uint8(k))
	}
}

// AdjointSide resolves the side of the adjoint operator for a derivative
// of kind k taken on side s. One-sided kinds mirror; kinds with a centered
// analogue keep centered fixed. Asking for a centered adjoint of a kind
// that exists only one-sided fails with ErrAmbiguousSide.
func (k DerivKind) AdjointSide(s Side) (Side, error) {
	if k == DerivStaggered && s == Centered {
		return s, fmt.Errorf("%s derivative: %w", k, ErrAmbiguousSide)
	}
	return s.Flip(), nil
}

// DerivFunc rewrites an equation's right-hand side into its derivative
// along one dimension. The symbolic work happens in the collaborator;
// the table below only routes to it.
type DerivFunc func(eq Equation, dim *space.Dimension) (Equation, error)

// DerivKey addresses one table entry.
type DerivKey struct {
	Dim  string
	Kind DerivKind
}

// DerivTable is an explicit (dimension, kind) -> derivation dispatch.
// Every entry point is registered up front and enumerable; nothing is
// synthesized at call time.
type DerivTable struct {
	entries map[DerivKey]DerivFunc
	keys    []DerivKey
}

func NewDerivTable() *DerivTable {
	return &DerivTable{entries: make(map[DerivKey]DerivFunc)}
}

// Register installs fn for (dim, kind), replacing any previous entry.
func (t *DerivTable) Register(dim string, kind DerivKind, fn DerivFunc) {
	key := DerivKey{Dim: dim, Kind: kind}
	if _, seen := t.entries[key]; !seen {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = fn
}

// Resolve looks up the derivation for (dim, kind).
func (t *DerivTable) Resolve(dim string, kind DerivKind) (DerivFunc, bool) {
	fn, ok := t.entries[DerivKey{Dim: dim, Kind: kind}]
	return fn, ok
}

// Keys returns every registered entry point in registration order.
func (t *DerivTable) Keys() []DerivKey {
	out := make([]DerivKey, len(t.keys))
	copy(out, t.keys)
	return out
}
