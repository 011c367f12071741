package space

// Property is an opaque scheduling tag attached to a loop. The tree layer
// carries properties through every rewrite untouched; their interpretation
// belongs to the scheduling collaborator.
type Property string

const (
	Sequential   Property = "sequential"
	Parallel     Property = "parallel"
	Vectorizable Property = "vectorizable"
)

// Dimension names one axis of an iteration space. A derived dimension
// (stepping or staggered sub-dimension) keeps a link to the dimension it
// was carved out of.
type Dimension struct {
	Name   string
	Parent *Dimension
}

func New(name string) *Dimension {
	return &Dimension{Name: name}
}

// Derive creates a sub-dimension of d, e.g. a modulo-stepping time index.
func (d *Dimension) Derive(name string) *Dimension {
	return &Dimension{Name: name, Parent: d}
}

func (d *Dimension) IsDerived() bool { return d.Parent != nil }

// Root follows the parent chain to the original dimension.
func (d *Dimension) Root() *Dimension {
	r := d
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

func (d *Dimension) String() string { return d.Name }
