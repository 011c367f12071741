package iet_test

import (
	"testing"

	"stencil/internal/iet"
	"stencil/internal/space"
)

func TestFindSymbolsFirstSeenOrder(t *testing.T) {
	exprs := testExprs()
	iters := testIters()
	symbols := iet.FindSymbols(makeBlock1(exprs, iters))
	if len(symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(symbols))
	}
	if symbols[0].Name != "a" || symbols[1].Name != "b" {
		t.Errorf("expected [a b], got [%s %s]", symbols[0].Name, symbols[1].Name)
	}
}

func TestFindSymbolsDeduplicates(t *testing.T) {
	exprs := testExprs()
	iters := testIters()
	// block3 references a and b in all four expressions
	symbols := iet.FindSymbols(makeBlock3(exprs, iters))
	if len(symbols) != 2 {
		t.Errorf("expected 2 distinct symbols, got %d", len(symbols))
	}
}

func TestCallableParamSynthesis(t *testing.T) {
	exprs := testExprs()
	iters := testIters()
	f := iet.NewCallable("foo", makeBlock1(exprs, iters), "void", nil)

	want := []string{"a", "b", "a_size", "b_size"}
	if len(f.Params) != len(want) {
		t.Fatalf("expected %d params, got %d", len(want), len(f.Params))
	}
	for i, name := range want {
		if f.Params[i].Name != name {
			t.Errorf("param %d: expected %s, got %s", i, name, f.Params[i].Name)
		}
	}
	if f.Params[0].IsSize || !f.Params[2].IsSize {
		t.Errorf("size flags misplaced: %+v", f.Params)
	}
}

func TestFindSectionsPerfectNest(t *testing.T) {
	exprs := testExprs()
	iters := testIters()
	sections := iet.FindSections(makeBlock1(exprs, iters))
	if sections.Len() != 1 {
		t.Errorf("expected 1 section, got %d", sections.Len())
	}
}

func TestFindSectionsSimpleNest(t *testing.T) {
	exprs := testExprs()
	iters := testIters()
	sections := iet.FindSections(makeBlock2(exprs, iters))
	if sections.Len() != 2 {
		t.Fatalf("expected 2 sections, got %d", sections.Len())
	}
	found := sections.All()
	if len(found[0].Exprs) != 1 || len(found[1].Exprs) != 1 {
		t.Errorf("expected counts [1 1], got [%d %d]", len(found[0].Exprs), len(found[1].Exprs))
	}
}

func TestFindSectionsNonTrivialNest(t *testing.T) {
	exprs := testExprs()
	iters := testIters()
	sections := iet.FindSections(makeBlock3(exprs, iters))
	if sections.Len() != 3 {
		t.Fatalf("expected 3 sections, got %d", sections.Len())
	}
	found := sections.All()
	wantCounts := []int{1, 2, 1}
	wantDims := [][]string{{"i", "s"}, {"i", "j", "k"}, {"i", "q"}}
	for i, sec := range found {
		if len(sec.Exprs) != wantCounts[i] {
			t.Errorf("section %d: expected %d exprs, got %d", i, wantCounts[i], len(sec.Exprs))
		}
		dims := sec.Dims()
		if len(dims) != len(wantDims[i]) {
			t.Fatalf("section %d: expected dims %v, got %v", i, wantDims[i], dims)
		}
		for j, d := range wantDims[i] {
			if dims[j] != d {
				t.Errorf("section %d: expected dims %v, got %v", i, wantDims[i], dims)
			}
		}
	}
}

func TestFindSectionsConditionalBoundary(t *testing.T) {
	exprs := testExprs()
	iters := testIters()
	// for i { expr0; if g { expr1 }; expr2 }: the guard's interior must
	// not join the sibling run even though the loop tuple is unchanged.
	block := iters[0](exprs[0], iet.NewConditional("g", exprs[1]), exprs[2])
	sections := iet.FindSections(block)
	if sections.Len() != 2 {
		t.Fatalf("expected 2 sections, got %d", sections.Len())
	}
	found := sections.All()
	if len(found[0].Exprs) != 2 || len(found[1].Exprs) != 1 {
		t.Errorf("expected counts [2 1], got [%d %d]", len(found[0].Exprs), len(found[1].Exprs))
	}
}

func TestFindSectionsBareExpression(t *testing.T) {
	exprs := testExprs()
	sections := iet.FindSections(exprs[0])
	if sections.Len() != 1 {
		t.Fatalf("expected 1 section, got %d", sections.Len())
	}
	sec := sections.All()[0]
	if len(sec.Iterations) != 0 || len(sec.Exprs) != 1 {
		t.Errorf("expected the empty-tuple section, got %d iterations, %d exprs",
			len(sec.Iterations), len(sec.Exprs))
	}
}

func TestFindSectionsTotalCountLaw(t *testing.T) {
	exprs := testExprs()
	iters := testIters()
	trees := []iet.Node{
		makeBlock1(exprs, iters),
		makeBlock2(exprs, iters),
		makeBlock3(exprs, iters),
		makeBlock4(exprs, iters),
		iters[0](exprs[0], iet.NewConditional("g", exprs[1]).WithElse(exprs[2]), exprs[3]),
	}
	for i, tree := range trees {
		total := 0
		countExprs(tree, &total)
		if got := iet.FindSections(tree).ExprCount(); got != total {
			t.Errorf("tree %d: section expr sum %d, tree has %d expressions", i, got, total)
		}
	}
}

func countExprs(n iet.Node, total *int) {
	if _, ok := n.(*iet.Expression); ok {
		*total++
	}
	for _, child := range n.Children() {
		countExprs(child, total)
	}
}

func TestIsPerfectIteration(t *testing.T) {
	exprs := testExprs()
	iters := testIters()

	block1 := makeBlock1(exprs, iters)
	if !iet.IsPerfectIteration(block1) {
		t.Errorf("block1 should be perfect")
	}
	if !iet.IsPerfectIteration(block1.Body[0]) {
		t.Errorf("block1 inner j loop should be perfect")
	}

	block2 := makeBlock2(exprs, iters)
	if iet.IsPerfectIteration(block2) {
		t.Errorf("block2 has a sibling expression, not perfect")
	}
	if !iet.IsPerfectIteration(block2.Body[1]) {
		t.Errorf("block2 inner j loop should be perfect")
	}

	block3 := makeBlock3(exprs, iters)
	if iet.IsPerfectIteration(block3) {
		t.Errorf("block3 should not be perfect")
	}
	for i, child := range block3.Body {
		if !iet.IsPerfectIteration(child) {
			t.Errorf("block3 child %d should be perfect in isolation", i)
		}
	}
}

func TestIsPerfectIterationConditional(t *testing.T) {
	exprs := testExprs()
	iters := testIters()

	// A Conditional child makes the enclosing loop non-perfect even when
	// the guarded branch is itself a perfect single-child chain.
	block4 := makeBlock4(exprs, iters)
	if iet.IsPerfectIteration(block4) {
		t.Errorf("guarded nest should not be perfect")
	}
	cond := block4.Body[0].(*iet.Conditional)
	if !iet.IsPerfectIteration(cond) {
		t.Errorf("else-free single-child conditional should be perfect in isolation")
	}
	if !iet.IsPerfectIteration(cond.Then[0]) {
		t.Errorf("guarded inner loop should be perfect in isolation")
	}

	withElse := iet.NewConditional("g", exprs[0]).WithElse(exprs[1])
	if iet.IsPerfectIteration(withElse) {
		t.Errorf("conditional with an else branch is never perfect")
	}
}

func TestIsPerfectIterationBaseCases(t *testing.T) {
	exprs := testExprs()

	if !iet.IsPerfectIteration(exprs[0]) {
		t.Errorf("a bare expression is vacuously perfect")
	}
	multi := iet.NewIteration(space.New("x"), space.MustBounds(0, 3, 1), exprs[0], exprs[1])
	if iet.IsPerfectIteration(multi) {
		t.Errorf("a loop with two children is not perfect")
	}
	if iet.IsPerfectIteration(iet.NewBlock(exprs[0])) {
		t.Errorf("a block is not a loop nest")
	}
}
