package sym

import (
	"errors"
	"fmt"
)

// ErrAmbiguousSide reports an adjoint request that has no answer because
// the derivative kind lacks a centered analogue.
var ErrAmbiguousSide = errors.New("ambiguous side: derivative kind has no centered analogue")

// Side tags which neighbourhood a finite-difference approximation leans on.
type Side uint8

const (
	Centered Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Centered:
		return "centered"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("side#%d", uint8(s))
	}
}

// Flip mirrors a one-sided tag; centered is its own mirror.
func (s Side) Flip() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return s
	}
}

// Transpose tags whether an operator is applied directly or as its adjoint.
type Transpose uint8

const (
	Direct Transpose = iota
	Adjoint
)

func (t Transpose) String() string {
	if t == Adjoint {
		return "adjoint"
	}
	return "direct"
}

func (t Transpose) Flip() Transpose {
	if t == Adjoint {
		return Direct
	}
	return Adjoint
}
