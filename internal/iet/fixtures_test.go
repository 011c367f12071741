package iet_test

import (
	"stencil/internal/iet"
	"stencil/internal/space"
	"stencil/internal/sym"
)

// The fixtures mirror the four canonical nests used throughout the
// package tests: a perfect nest, a simple non-perfect nest, a non-trivial
// non-perfect nest and a guarded nest.

var (
	symA = sym.Array("a", sym.Float32)
	symB = sym.Array("b", sym.Float32)
)

func access(s sym.Symbol, index string) sym.Indexed {
	return sym.Indexed{Base: s, Index: index}
}

func testExprs() []*iet.Expression {
	reads := []sym.Indexed{access(symA, "i"), access(symB, "i")}
	return []*iet.Expression{
		iet.NewExpression(sym.NewEquation(access(symA, "i"), "a[i] + b[i] + 5.0", reads...)),
		iet.NewExpression(sym.NewEquation(access(symA, "i"), "-a[i] + b[i]", reads...)),
		iet.NewExpression(sym.NewEquation(access(symA, "i"), "4*a[i]*b[i]", reads...)),
		iet.NewExpression(sym.NewEquation(access(symA, "i"), "8.0*a[i] + 6.0/b[i]", reads...)),
	}
}

type loopMaker func(body ...iet.Node) *iet.Iteration

func testIters() []loopMaker {
	dims := []struct {
		name string
		end  int
	}{
		{"i", 3},
		{"j", 5},
		{"k", 7},
		{"s", 4},
		{"q", 4},
	}
	makers := make([]loopMaker, len(dims))
	for idx, d := range dims {
		dim := space.New(d.name)
		bounds := space.MustBounds(0, d.end, 1)
		makers[idx] = func(body ...iet.Node) *iet.Iteration {
			return iet.NewIteration(dim, bounds, body...)
		}
	}
	return makers
}

// block1: for i { for j { for k { expr0 } } }
func makeBlock1(exprs []*iet.Expression, iters []loopMaker) *iet.Iteration {
	return iters[0](iters[1](iters[2](exprs[0])))
}

// block2: for i { expr0; for j { for k { expr1 } } }
func makeBlock2(exprs []*iet.Expression, iters []loopMaker) *iet.Iteration {
	return iters[0](exprs[0], iters[1](iters[2](exprs[1])))
}

// block3: for i { for s { expr0 }; for j { for k { expr1; expr2 } }; for q { expr3 } }
func makeBlock3(exprs []*iet.Expression, iters []loopMaker) *iet.Iteration {
	return iters[0](
		iters[3](exprs[0]),
		iters[1](iters[2](exprs[1], exprs[2])),
		iters[4](exprs[3]),
	)
}

// block4: for i { if i % 2 == 0 { for j { expr0 } } }
func makeBlock4(exprs []*iet.Expression, iters []loopMaker) *iet.Iteration {
	return iters[0](iet.NewConditional("Eq(Mod(i, 2), 0)", iters[1](exprs[0])))
}
