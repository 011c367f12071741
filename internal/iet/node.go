package iet

import (
	"stencil/internal/space"
	"stencil/internal/sym"
)

// Node is one vertex of the loop-nest tree. Nodes are built bottom-up and
// never mutated afterwards; transformations produce new trees and may
// share untouched subtrees by reference.
type Node interface {
	// ID is the per-instance rewrite handle.
	ID() NodeID
	// Children returns the ordered child sequence; order is semantic.
	Children() []Node
	// Rebuild returns a new node of the same kind with the same non-child
	// attributes, the given children and a fresh ID. For branching kinds
	// the children are split the way Children flattened them.
	Rebuild(children ...Node) Node
}

// Expression is a leaf holding one collaborator-supplied equation.
type Expression struct {
	id NodeID
	Eq sym.Equation
}

func NewExpression(eq sym.Equation) *Expression {
	return &Expression{id: nextNodeID(), Eq: eq}
}

func (e *Expression) ID() NodeID       { return e.id }
func (e *Expression) Children() []Node { return nil }

func (e *Expression) Rebuild(children ...Node) Node {
	return NewExpression(e.Eq)
}

// Iteration is a loop over one dimension. It exclusively owns its body;
// Properties and Offsets are opaque collaborator metadata carried through
// every rewrite unchanged.
type Iteration struct {
	id         NodeID
	Dim        *space.Dimension
	Limits     space.Bounds
	Offsets    [2]int
	Properties []space.Property
	Body       []Node
}

func NewIteration(dim *space.Dimension, limits space.Bounds, body ...Node) *Iteration {
	return &Iteration{id: nextNodeID(), Dim: dim, Limits: limits, Body: body}
}

// WithOffsets returns a copy carrying the collaborator's halo offsets.
func (it *Iteration) WithOffsets(lo, hi int) *Iteration {
	c := it.clone()
	c.Offsets = [2]int{lo, hi}
	return c
}

// WithProperties returns a copy carrying scheduling tags.
func (it *Iteration) WithProperties(props ...space.Property) *Iteration {
	c := it.clone()
	c.Properties = append([]space.Property(nil), props...)
	return c
}

func (it *Iteration) clone() *Iteration {
	c := *it
	c.id = nextNodeID()
	return &c
}

func (it *Iteration) ID() NodeID       { return it.id }
func (it *Iteration) Children() []Node { return it.Body }

func (it *Iteration) Rebuild(children ...Node) Node {
	c := it.clone()
	c.Body = children
	return c
}

// Index returns the loop index name: the dimension's own name, which for
// derived dimensions differs from the root grid dimension it steps over.
func (it *Iteration) Index() string { return it.Dim.Name }

// Conditional guards a subtree with an opaque boolean expression. The
// else branch is optional.
type Conditional struct {
	id    NodeID
	Guard string
	Then  []Node
	Else  []Node
}

func NewConditional(guard string, then ...Node) *Conditional {
	return &Conditional{id: nextNodeID(), Guard: guard, Then: then}
}

// WithElse returns a copy with the given else branch.
func (c *Conditional) WithElse(els ...Node) *Conditional {
	n := c.clone()
	n.Else = els
	return n
}

func (c *Conditional) clone() *Conditional {
	n := *c
	n.id = nextNodeID()
	return &n
}

func (c *Conditional) ID() NodeID { return c.id }

// Children flattens the then branch followed by the else branch.
func (c *Conditional) Children() []Node {
	if len(c.Else) == 0 {
		return c.Then
	}
	out := make([]Node, 0, len(c.Then)+len(c.Else))
	out = append(out, c.Then...)
	out = append(out, c.Else...)
	return out
}

func (c *Conditional) Rebuild(children ...Node) Node {
	split := len(c.Then)
	if split > len(children) {
		split = len(children)
	}
	n := c.clone()
	n.Then = children[:split]
	n.Else = children[split:]
	return n
}

func (c *Conditional) rebuildBranches(then, els []Node) *Conditional {
	n := c.clone()
	n.Then = then
	n.Else = els
	return n
}

// Block groups decoration around its children: plain text lines emitted
// before and after the body. It has no loop or scope semantics of its own.
type Block struct {
	id     NodeID
	Header []string
	Body   []Node
	Footer []string
}

func NewBlock(body ...Node) *Block {
	return &Block{id: nextNodeID(), Body: body}
}

func (b *Block) WithHeader(lines ...string) *Block {
	n := b.clone()
	n.Header = lines
	return n
}

func (b *Block) WithFooter(lines ...string) *Block {
	n := b.clone()
	n.Footer = lines
	return n
}

func (b *Block) clone() *Block {
	n := *b
	n.id = nextNodeID()
	return &n
}

func (b *Block) ID() NodeID       { return b.id }
func (b *Block) Children() []Node { return b.Body }

func (b *Block) Rebuild(children ...Node) Node {
	n := b.clone()
	n.Body = children
	return n
}
