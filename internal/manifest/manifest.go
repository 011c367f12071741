// Package manifest loads declarative kernel descriptions and builds
// loop-nest trees from them. A manifest is the CLI's only input format;
// in-process consumers construct trees directly through internal/iet.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"stencil/internal/iet"
	"stencil/internal/space"
	"stencil/internal/sym"
)

type Manifest struct {
	Kernel  kernelConfig   `toml:"kernel"`
	Dims    []dimConfig    `toml:"dims"`
	Symbols []symbolConfig `toml:"symbols"`
	Exprs   []exprConfig   `toml:"exprs"`
}

type kernelConfig struct {
	Name   string `toml:"name"`
	Return string `toml:"return"`
}

type dimConfig struct {
	Name       string   `toml:"name"`
	Parent     string   `toml:"parent"`
	Start      int64    `toml:"start"`
	End        int64    `toml:"end"`
	Step       int64    `toml:"step"`
	Offsets    []int64  `toml:"offsets"`
	Properties []string `toml:"properties"`
}

type symbolConfig struct {
	Name  string `toml:"name"`
	DType string `toml:"dtype"`
	Array bool   `toml:"array"`
}

type exprConfig struct {
	LHS   string   `toml:"lhs"`
	RHS   string   `toml:"rhs"`
	Reads []string `toml:"reads"`
	Loops []string `toml:"loops"`
	Guard string   `toml:"guard"`
}

// Load decodes a kernel manifest, rejecting unknown keys.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	normalize(&m)
	return &m, nil
}

// Parse decodes a manifest from memory; used by tests and the cache path.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("manifest: unknown key %q", undecoded[0].String())
	}
	normalize(&m)
	return &m, nil
}

// normalize brings user-supplied identifiers to NFC so equality on names
// is well-defined regardless of how the file was edited.
func normalize(m *Manifest) {
	m.Kernel.Name = norm.NFC.String(m.Kernel.Name)
	for i := range m.Dims {
		m.Dims[i].Name = norm.NFC.String(m.Dims[i].Name)
		m.Dims[i].Parent = norm.NFC.String(m.Dims[i].Parent)
	}
	for i := range m.Symbols {
		m.Symbols[i].Name = norm.NFC.String(m.Symbols[i].Name)
	}
}

// ReadFile loads a manifest and the raw bytes it was decoded from, so
// callers can digest the content for caching.
func ReadFile(path string) (*Manifest, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, data, nil
}

// Build assembles the manifest into a Callable. Consecutive expressions
// sharing a loop prefix share the corresponding Iteration nodes, so the
// nest comes out the way the expressions were written down.
func (m *Manifest) Build() (*iet.Callable, error) {
	dims, err := m.dimensions()
	if err != nil {
		return nil, err
	}
	symbols := m.symbolTable()

	entries := make([]exprEntry, 0, len(m.Exprs))
	for i, ec := range m.Exprs {
		eq, err := m.equation(ec, symbols)
		if err != nil {
			return nil, fmt.Errorf("exprs[%d]: %w", i, err)
		}
		for _, loop := range ec.Loops {
			if _, ok := dims[loop]; !ok {
				return nil, fmt.Errorf("exprs[%d]: unknown dimension %q", i, loop)
			}
		}
		entries = append(entries, exprEntry{loops: ec.Loops, guard: ec.Guard, eq: eq})
	}

	b := nestBuilder{dims: dims, cfg: m.dimConfigs()}
	body := b.build(entries, 0)

	name := m.Kernel.Name
	if name == "" {
		name = "kernel"
	}
	ret := m.Kernel.Return
	if ret == "" {
		ret = "void"
	}
	root := iet.Node(iet.NewBlock(body...))
	if len(body) == 1 {
		root = body[0]
	}
	return iet.NewCallable(name, root, ret, nil), nil
}

type exprEntry struct {
	loops []string
	guard string
	eq    sym.Equation
}

type nestBuilder struct {
	dims map[string]*space.Dimension
	cfg  map[string]dimConfig
}

// build groups consecutive entries by their loop name at depth and wraps
// each group in one Iteration. Entries whose loop list ends at depth
// become expressions at this level; a guard wraps the expression in a
// Conditional.
func (b *nestBuilder) build(entries []exprEntry, depth int) []iet.Node {
	var out []iet.Node
	for i := 0; i < len(entries); {
		e := entries[i]
		if len(e.loops) <= depth {
			out = append(out, b.leaf(e))
			i++
			continue
		}
		name := e.loops[depth]
		j := i + 1
		for j < len(entries) && len(entries[j].loops) > depth && entries[j].loops[depth] == name {
			j++
		}
		body := b.build(entries[i:j], depth+1)
		out = append(out, b.iteration(name, body))
		i = j
	}
	return out
}

func (b *nestBuilder) leaf(e exprEntry) iet.Node {
	expr := iet.NewExpression(e.eq)
	if e.guard != "" {
		return iet.NewConditional(e.guard, expr)
	}
	return expr
}

func (b *nestBuilder) iteration(name string, body []iet.Node) *iet.Iteration {
	cfg := b.cfg[name]
	it := iet.NewIteration(b.dims[name], boundsOf(cfg), body...)
	if len(cfg.Offsets) == 2 {
		lo, _ := safecast.Conv[int](cfg.Offsets[0])
		hi, _ := safecast.Conv[int](cfg.Offsets[1])
		it = it.WithOffsets(lo, hi)
	}
	if len(cfg.Properties) > 0 {
		props := make([]space.Property, len(cfg.Properties))
		for i, p := range cfg.Properties {
			props[i] = space.Property(p)
		}
		it = it.WithProperties(props...)
	}
	return it
}

func (m *Manifest) dimensions() (map[string]*space.Dimension, error) {
	dims := make(map[string]*space.Dimension, len(m.Dims))
	for _, dc := range m.Dims {
		if dc.Name == "" {
			return nil, fmt.Errorf("dims: empty name")
		}
		if _, dup := dims[dc.Name]; dup {
			return nil, fmt.Errorf("dims: duplicate dimension %q", dc.Name)
		}
		if _, err := boundsChecked(dc); err != nil {
			return nil, fmt.Errorf("dims[%s]: %w", dc.Name, err)
		}
		if len(dc.Offsets) != 0 && len(dc.Offsets) != 2 {
			return nil, fmt.Errorf("dims[%s]: offsets must hold exactly two values", dc.Name)
		}
		dims[dc.Name] = space.New(dc.Name)
	}
	// Parents resolve in a second pass so order in the file is free.
	for _, dc := range m.Dims {
		if dc.Parent == "" {
			continue
		}
		parent, ok := dims[dc.Parent]
		if !ok {
			return nil, fmt.Errorf("dims[%s]: unknown parent %q", dc.Name, dc.Parent)
		}
		dims[dc.Name] = parent.Derive(dc.Name)
	}
	return dims, nil
}

func (m *Manifest) dimConfigs() map[string]dimConfig {
	out := make(map[string]dimConfig, len(m.Dims))
	for _, dc := range m.Dims {
		out[dc.Name] = dc
	}
	return out
}

func boundsChecked(dc dimConfig) (space.Bounds, error) {
	start, err := safecast.Conv[int](dc.Start)
	if err != nil {
		return space.Bounds{}, fmt.Errorf("start: %w", err)
	}
	end, err := safecast.Conv[int](dc.End)
	if err != nil {
		return space.Bounds{}, fmt.Errorf("end: %w", err)
	}
	step := dc.Step
	if step == 0 {
		step = 1
	}
	st, err := safecast.Conv[int](step)
	if err != nil {
		return space.Bounds{}, fmt.Errorf("step: %w", err)
	}
	return space.NewBounds(start, end, st)
}

func boundsOf(dc dimConfig) space.Bounds {
	b, err := boundsChecked(dc)
	if err != nil {
		// dimensions() validated every config already
		panic(err)
	}
	return b
}

func (m *Manifest) symbolTable() map[string]sym.Symbol {
	table := make(map[string]sym.Symbol, len(m.Symbols))
	for _, sc := range m.Symbols {
		table[sc.Name] = sym.Symbol{
			Name:    sc.Name,
			DType:   dtypeOf(sc.DType),
			IsArray: sc.Array,
		}
	}
	return table
}

func dtypeOf(name string) sym.DType {
	switch name {
	case "float64":
		return sym.Float64
	case "int32":
		return sym.Int32
	case "int64":
		return sym.Int64
	default:
		return sym.Float32
	}
}

func (m *Manifest) equation(ec exprConfig, table map[string]sym.Symbol) (sym.Equation, error) {
	lhs, err := parseAccess(ec.LHS, table)
	if err != nil {
		return sym.Equation{}, fmt.Errorf("lhs: %w", err)
	}
	if ec.RHS == "" {
		return sym.Equation{}, fmt.Errorf("empty rhs")
	}
	reads := make([]sym.Indexed, 0, len(ec.Reads))
	for _, r := range ec.Reads {
		ix, err := parseAccess(r, table)
		if err != nil {
			return sym.Equation{}, fmt.Errorf("reads: %w", err)
		}
		reads = append(reads, ix)
	}
	return sym.NewEquation(lhs, ec.RHS, reads...), nil
}

// parseAccess splits "a[i]" into base and index; a bare name is a scalar
// access. The base must be a declared symbol.
func parseAccess(text string, table map[string]sym.Symbol) (sym.Indexed, error) {
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		return sym.Indexed{}, fmt.Errorf("empty access")
	}
	name := text
	index := ""
	if open := strings.IndexByte(text, '['); open >= 0 {
		if !strings.HasSuffix(text, "]") {
			return sym.Indexed{}, fmt.Errorf("malformed access %q", text)
		}
		name = text[:open]
		index = text[open+1 : len(text)-1]
	}
	base, ok := table[name]
	if !ok {
		return sym.Indexed{}, fmt.Errorf("undeclared symbol %q", name)
	}
	return sym.Indexed{Base: base, Index: index}, nil
}
