package iet

import (
	"stencil/internal/sym"
)

// Param is one entry of a Callable's parameter list. The declaration
// syntax (pointer qualifiers, const-ness) is the renderer's concern; the
// tree layer guarantees only identity and order.
type Param struct {
	Name    string
	DType   sym.DType
	IsArray bool
	// IsSize marks the implicit extent parameter synthesized for an
	// array symbol.
	IsSize bool
}

// Callable binds a name, a return-type tag and one body subtree. When
// params is nil the list is synthesized from the body: referenced symbols
// in first-occurrence order, then one size parameter per array symbol.
type Callable struct {
	id      NodeID
	Name    string
	RetType string
	Params  []Param
	Body    Node
}

func NewCallable(name string, body Node, retType string, params []Param) *Callable {
	if params == nil {
		params = synthesizeParams(body)
	}
	return &Callable{id: nextNodeID(), Name: name, RetType: retType, Params: params, Body: body}
}

func (f *Callable) ID() NodeID { return f.id }

func (f *Callable) Children() []Node {
	if f.Body == nil {
		return nil
	}
	return []Node{f.Body}
}

func (f *Callable) Rebuild(children ...Node) Node {
	n := *f
	n.id = nextNodeID()
	if len(children) > 0 {
		n.Body = children[0]
	} else {
		n.Body = nil
	}
	return &n
}

func synthesizeParams(body Node) []Param {
	symbols := FindSymbols(body)
	params := make([]Param, 0, len(symbols)*2)
	for _, s := range symbols {
		params = append(params, Param{Name: s.Name, DType: s.DType, IsArray: s.IsArray})
	}
	for _, s := range symbols {
		if s.IsArray {
			params = append(params, Param{Name: s.Name + "_size", DType: sym.Int32, IsSize: true})
		}
	}
	return params
}
