package iet

import (
	"strconv"
	"strings"

	"stencil/internal/sym"
)

// FindSymbols collects the distinct base symbols referenced by any
// equation under n, in first-seen order, ignoring index expressions.
func FindSymbols(n Node) []sym.Symbol {
	var out []sym.Symbol
	seen := make(map[string]struct{})
	walk(n, func(node Node) {
		e, ok := node.(*Expression)
		if !ok {
			return
		}
		for _, op := range e.Eq.Operands() {
			if _, dup := seen[op.Base.Name]; dup {
				continue
			}
			seen[op.Base.Name] = struct{}{}
			out = append(out, op.Base)
		}
	})
	return out
}

func walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children() {
		walk(child, fn)
	}
}

// Section is a maximal group of expressions sharing the same enclosing
// loop context. Iterations lists the enclosing loops outermost first.
type Section struct {
	Iterations []*Iteration
	Exprs      []*Expression
}

// Dims returns the dimension names of the enclosing loops.
func (s *Section) Dims() []string {
	out := make([]string, len(s.Iterations))
	for i, it := range s.Iterations {
		out[i] = it.Dim.Name
	}
	return out
}

// Sections is the first-encountered-order result of FindSections.
type Sections struct {
	list  []*Section
	index map[string]int
}

func (s *Sections) Len() int        { return len(s.list) }
func (s *Sections) All() []*Section { return s.list }

// ExprCount sums the expression counts of every section. It always
// equals the number of Expression nodes in the visited subtree.
func (s *Sections) ExprCount() int {
	total := 0
	for _, sec := range s.list {
		total += len(sec.Exprs)
	}
	return total
}

// FindSections partitions the expressions under n by their enclosing
// loop context. The context is the identity tuple of the surrounding
// Iteration nodes; a Conditional is always a hard boundary, so its
// interior never joins a sibling run even when the loop tuple is
// unchanged. Expressions outside any loop fall under the empty tuple.
func FindSections(n Node) *Sections {
	s := &Sections{index: make(map[string]int)}
	var f sectionFinder
	f.visit(n, s)
	return s
}

// sectionFinder tracks the enclosing scope path: iteration identities
// interleaved with conditional identities, the latter only to salt the
// key so a guard's interior forms its own run.
type sectionFinder struct {
	iters []*Iteration
	path  []string
}

func (f *sectionFinder) visit(n Node, s *Sections) {
	switch v := n.(type) {
	case *Expression:
		s.add(f.key(), f.iters, v)

	case *Iteration:
		f.iters = append(f.iters, v)
		f.path = append(f.path, "i"+strconv.FormatUint(uint64(v.ID()), 10))
		for _, child := range v.Body {
			f.visit(child, s)
		}
		f.iters = f.iters[:len(f.iters)-1]
		f.path = f.path[:len(f.path)-1]

	case *Conditional:
		f.path = append(f.path, "c"+strconv.FormatUint(uint64(v.ID()), 10))
		for _, child := range v.Then {
			f.visit(child, s)
		}
		for _, child := range v.Else {
			f.visit(child, s)
		}
		f.path = f.path[:len(f.path)-1]

	default:
		for _, child := range n.Children() {
			f.visit(child, s)
		}
	}
}

func (f *sectionFinder) key() string {
	return strings.Join(f.path, "/")
}

func (s *Sections) add(key string, iters []*Iteration, e *Expression) {
	if i, ok := s.index[key]; ok {
		s.list[i].Exprs = append(s.list[i].Exprs, e)
		return
	}
	sec := &Section{
		Iterations: append([]*Iteration(nil), iters...),
		Exprs:      []*Expression{e},
	}
	s.index[key] = len(s.list)
	s.list = append(s.list, sec)
}

// IsPerfectIteration reports whether n is a perfect nest: at every level
// the body is a single nested loop or a single statement. A Conditional
// qualifies only without an else branch; a Conditional child always makes
// the enclosing Iteration non-perfect. A bare Expression is vacuously
// perfect, which anchors the recursion.
func IsPerfectIteration(n Node) bool {
	switch v := n.(type) {
	case *Expression:
		return true
	case *Iteration:
		return len(v.Body) == 1 && perfectChild(v.Body[0])
	case *Conditional:
		return len(v.Else) == 0 && len(v.Then) == 1 && perfectChild(v.Then[0])
	default:
		return false
	}
}

func perfectChild(n Node) bool {
	switch v := n.(type) {
	case *Expression:
		return true
	case *Iteration:
		return IsPerfectIteration(v)
	default:
		return false
	}
}
