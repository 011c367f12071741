package sym_test

import (
	"testing"

	"stencil/internal/space"
	"stencil/internal/sym"
)

func TestDerivTableResolve(t *testing.T) {
	table := sym.NewDerivTable()
	fn := func(eq sym.Equation, dim *space.Dimension) (sym.Equation, error) {
		return eq, nil
	}
	table.Register("x", sym.DerivFirst, fn)
	table.Register("x", sym.DerivSecond, fn)

	if _, ok := table.Resolve("x", sym.DerivFirst); !ok {
		t.Errorf("registered entry not found")
	}
	if _, ok := table.Resolve("y", sym.DerivFirst); ok {
		t.Errorf("unregistered dimension resolved")
	}
	if _, ok := table.Resolve("x", sym.DerivCross); ok {
		t.Errorf("unregistered kind resolved")
	}
}

func TestDerivTableKeysStable(t *testing.T) {
	table := sym.NewDerivTable()
	fn := func(eq sym.Equation, dim *space.Dimension) (sym.Equation, error) {
		return eq, nil
	}
	table.Register("x", sym.DerivFirst, fn)
	table.Register("t", sym.DerivSecond, fn)
	table.Register("x", sym.DerivFirst, fn) // re-register keeps position

	keys := table.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0] != (sym.DerivKey{Dim: "x", Kind: sym.DerivFirst}) ||
		keys[1] != (sym.DerivKey{Dim: "t", Kind: sym.DerivSecond}) {
		t.Errorf("keys out of registration order: %v", keys)
	}
}

func TestEquationOperands(t *testing.T) {
	a := sym.Array("a", sym.Float32)
	b := sym.Array("b", sym.Float32)
	eq := sym.NewEquation(
		sym.Indexed{Base: a, Index: "i"},
		"a[i] + b[i]",
		sym.Indexed{Base: a, Index: "i"},
		sym.Indexed{Base: b, Index: "i"},
	)
	ops := eq.Operands()
	if len(ops) != 3 {
		t.Fatalf("expected 3 operands, got %d", len(ops))
	}
	if ops[0].Base.Name != "a" {
		t.Errorf("write target must come first, got %s", ops[0].Base.Name)
	}
	if eq.String() != "a[i] = a[i] + b[i]" {
		t.Errorf("unexpected rendering %q", eq.String())
	}
}
