package sym

import "fmt"

type DType uint8

const (
	Float32 DType = iota
	Float64
	Int32
	Int64
)

func (t DType) String() string {
	switch t {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return fmt.Sprintf("dtype#%d", uint8(t))
	}
}

// Symbol is the base identity of an operand: a scalar or a grid array.
// Two occurrences with the same name refer to the same symbol regardless
// of the index expression they are accessed through.
type Symbol struct {
	Name    string
	DType   DType
	IsArray bool
}

func Scalar(name string, dtype DType) Symbol {
	return Symbol{Name: name, DType: dtype}
}

func Array(name string, dtype DType) Symbol {
	return Symbol{Name: name, DType: dtype, IsArray: true}
}

func (s Symbol) String() string { return s.Name }

// Indexed is one access to a symbol under a free-index expression,
// e.g. a[i] or u[t0, x+1]. The index text is opaque to the tree layer.
type Indexed struct {
	Base  Symbol
	Index string
}

func (ix Indexed) String() string {
	if !ix.Base.IsArray || ix.Index == "" {
		return ix.Base.Name
	}
	return fmt.Sprintf("%s[%s]", ix.Base.Name, ix.Index)
}
