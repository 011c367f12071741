package iet

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes the canonical text projection of a tree. The projection
// is deterministic: two trees are equal for testing purposes iff their
// projections are byte-identical.
type Printer struct {
	w       io.Writer
	indent  int
	verbose bool
	err     error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, verbose: true}
}

// NewCompactPrinter drops bounds, offsets, guards and equation bodies,
// leaving only the node skeleton.
func NewCompactPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the verbose projection of n to w.
func Dump(w io.Writer, n Node) error {
	return NewPrinter(w).Print(n)
}

// PrintAST returns the verbose projection of n without a trailing newline.
func PrintAST(n Node) string {
	var sb strings.Builder
	p := NewPrinter(&sb)
	_ = p.Print(n)
	return strings.TrimSuffix(sb.String(), "\n")
}

// Print renders n and its subtree.
func (p *Printer) Print(n Node) error {
	p.printNode(n)
	return p.err
}

func (p *Printer) printNode(n Node) {
	switch v := n.(type) {
	case *Expression:
		if p.verbose {
			p.line("<Expression %s>", v.Eq)
		} else {
			p.line("<Expression>")
		}

	case *Iteration:
		if p.verbose {
			p.line("<Iteration %s::%s::%s::(%d, %d)>",
				v.Index(), v.Dim.Root().Name, v.Limits, v.Offsets[0], v.Offsets[1])
		} else {
			p.line("<Iteration %s>", v.Index())
		}
		p.printBody(v.Body)

	case *Conditional:
		if p.verbose {
			p.line("<If %s>", v.Guard)
		} else {
			p.line("<If>")
		}
		p.printBody(v.Then)
		if len(v.Else) > 0 {
			p.line("<Else>")
			p.printBody(v.Else)
		}

	case *Block:
		for _, h := range v.Header {
			p.line("%s", h)
		}
		for _, child := range v.Body {
			p.printNode(child)
		}
		for _, f := range v.Footer {
			p.line("%s", f)
		}

	case *Callable:
		p.line("<Callable %s>", v.Name)
		if v.Body != nil {
			p.printBody([]Node{v.Body})
		}

	default:
		p.line("<%T>", n)
	}
}

func (p *Printer) printBody(body []Node) {
	p.indent++
	for _, child := range body {
		p.printNode(child)
	}
	p.indent--
}

func (p *Printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	pad := strings.Repeat("  ", p.indent)
	_, p.err = fmt.Fprintf(p.w, pad+format+"\n", args...)
}
