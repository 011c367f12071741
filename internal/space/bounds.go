package space

import "fmt"

// Bounds describes the inclusive extent and stride of one loop.
type Bounds struct {
	Start int
	End   int
	Step  int
}

// NewBounds validates start <= end and a positive step. Iteration nodes
// only ever carry bounds that went through here.
func NewBounds(start, end, step int) (Bounds, error) {
	if step <= 0 {
		return Bounds{}, fmt.Errorf("bounds (%d, %d, %d): step must be positive", start, end, step)
	}
	if start > end {
		return Bounds{}, fmt.Errorf("bounds (%d, %d, %d): start exceeds end", start, end, step)
	}
	return Bounds{Start: start, End: end, Step: step}, nil
}

// MustBounds is NewBounds for statically known extents, e.g. in tests.
func MustBounds(start, end, step int) Bounds {
	b, err := NewBounds(start, end, step)
	if err != nil {
		panic(err)
	}
	return b
}

// Trip returns the number of iterations the bounds describe.
func (b Bounds) Trip() int {
	return (b.End-b.Start)/b.Step + 1
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%d, %d, %d)", b.Start, b.End, b.Step)
}
