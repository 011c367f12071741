// Package driver orchestrates manifest loading, tree construction and the
// analysis visitors for the CLI.
package driver

import (
	"fmt"

	"stencil/internal/iet"
	"stencil/internal/manifest"
	"stencil/internal/snapshot"
)

// Result is the plain-data outcome of analyzing one kernel manifest.
// Kernel is nil when the result came out of the snapshot cache.
type Result struct {
	Path      string
	Name      string
	AST       string
	Symbols   []string
	Sections  []snapshot.SectionStat
	Perfect   bool
	FromCache bool

	Kernel *iet.Callable
}

// Analyze builds the tree for one manifest and runs every visitor over
// its body. cache may be nil.
func Analyze(path string, cache *snapshot.DiskCache) (*Result, error) {
	m, data, err := manifest.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key := snapshot.DigestBytes(data)
	if payload, hit, err := cache.Get(key); err != nil {
		return nil, fmt.Errorf("%s: cache read: %w", path, err)
	} else if hit {
		return fromPayload(path, payload), nil
	}

	kernel, err := m.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	res := analyzeKernel(path, kernel)

	if err := cache.Put(key, toPayload(res)); err != nil {
		return nil, fmt.Errorf("%s: cache write: %w", path, err)
	}
	return res, nil
}

func analyzeKernel(path string, kernel *iet.Callable) *Result {
	body := kernel.Body

	res := &Result{
		Path:    path,
		Name:    kernel.Name,
		AST:     iet.PrintAST(kernel),
		Perfect: iet.IsPerfectIteration(body),
		Kernel:  kernel,
	}
	for _, s := range iet.FindSymbols(body) {
		res.Symbols = append(res.Symbols, s.Name)
	}
	for _, sec := range iet.FindSections(body).All() {
		res.Sections = append(res.Sections, snapshot.SectionStat{
			Dims:  sec.Dims(),
			Exprs: len(sec.Exprs),
		})
	}
	return res
}

func toPayload(res *Result) *snapshot.Payload {
	return &snapshot.Payload{
		Kernel:   res.Name,
		AST:      res.AST,
		Symbols:  res.Symbols,
		Perfect:  res.Perfect,
		Sections: res.Sections,
	}
}

func fromPayload(path string, p *snapshot.Payload) *Result {
	return &Result{
		Path:      path,
		Name:      p.Kernel,
		AST:       p.AST,
		Symbols:   p.Symbols,
		Sections:  p.Sections,
		Perfect:   p.Perfect,
		FromCache: true,
	}
}
