package iet

import (
	"errors"
	"fmt"
)

// ErrMalformedMapping reports a rewrite mapping whose replacement values
// contain each other's keys in a cycle, which nested resolution could
// never terminate on.
var ErrMalformedMapping = errors.New("malformed rewrite mapping: replacement cycle")

// Mapping drives one rewrite pass: node identity to replacement subtree.
// A nil replacement deletes the node. Keys not reachable from the visited
// root are a no-op, not an error.
type Mapping map[NodeID]Node

// Strategy selects the rewrite ordering semantics.
type Strategy uint8

const (
	// Shallow replaces in a single pass keyed on the original tree;
	// replacements never interact and are spliced in as-is.
	Shallow Strategy = iota
	// Nested resolves depth-first: an inner mapped node is resolved
	// first and its resolved form flows into the rebuild of any mapped
	// ancestor, so both substitutions land in one pass.
	Nested
)

// Transformer rebuilds trees from a replacement mapping. Both orderings
// share one fold; only the per-node decision differs.
type Transformer struct {
	mapping  Mapping
	strategy Strategy
}

// NewTransformer validates m and returns a single-pass rewriter.
func NewTransformer(m Mapping) (*Transformer, error) {
	if err := validateMapping(m); err != nil {
		return nil, err
	}
	return &Transformer{mapping: m, strategy: Shallow}, nil
}

// NewNestedTransformer validates m and returns a depth-first rewriter.
func NewNestedTransformer(m Mapping) (*Transformer, error) {
	if err := validateMapping(m); err != nil {
		return nil, err
	}
	return &Transformer{mapping: m, strategy: Nested}, nil
}

// Visit returns the rewritten tree. Subtrees untouched by the mapping are
// shared by reference with the input; the input itself is never mutated.
// Visiting a root that is itself deleted returns nil.
func (t *Transformer) Visit(root Node) Node {
	out, keep := t.visit(root)
	if !keep {
		return nil
	}
	return out
}

func (t *Transformer) visit(n Node) (Node, bool) {
	if t.strategy == Shallow {
		if rep, mapped := t.mapping[n.ID()]; mapped {
			if rep == nil {
				return nil, false
			}
			// Spliced as-is: the replacement is not itself subject to
			// substitution, so a value containing its own key (the wrap
			// idiom) cannot regress.
			return rep, true
		}
		return t.visitChildren(n)
	}

	// Nested: children first, then splice. A mapped node's replacement
	// keeps its own attributes but receives the depth-first-resolved
	// children of the original node.
	resolved, changed := t.resolveChildren(n)
	if rep, mapped := t.mapping[n.ID()]; mapped {
		if rep == nil {
			return nil, false
		}
		return rep.Rebuild(resolved...), true
	}
	if !changed {
		return n, true
	}
	return t.rebuild(n, resolved), true
}

// visitChildren recurses for the shallow strategy, rebuilding n only when
// some child actually changed.
func (t *Transformer) visitChildren(n Node) (Node, bool) {
	switch v := n.(type) {
	case *Conditional:
		newThen, thenChanged := t.visitList(v.Then)
		newElse, elseChanged := t.visitList(v.Else)
		if !thenChanged && !elseChanged {
			return v, true
		}
		return v.rebuildBranches(newThen, newElse), true
	default:
		newChildren, changed := t.visitList(n.Children())
		if !changed {
			return n, true
		}
		return n.Rebuild(newChildren...), true
	}
}

func (t *Transformer) visitList(nodes []Node) ([]Node, bool) {
	changed := false
	out := make([]Node, 0, len(nodes))
	for _, child := range nodes {
		res, keep := t.visit(child)
		if !keep {
			changed = true
			continue
		}
		if res != child {
			changed = true
		}
		out = append(out, res)
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

// resolveChildren is the depth-first half of the nested strategy: it
// returns the original node's children with inner mappings applied,
// flattened the way Children flattens them.
func (t *Transformer) resolveChildren(n Node) ([]Node, bool) {
	children := n.Children()
	out, changed := t.visitList(children)
	return out, changed
}

// rebuild reassembles n around resolved children, honoring branch groups.
func (t *Transformer) rebuild(n Node, children []Node) Node {
	if c, ok := n.(*Conditional); ok {
		// visitList flattened then+else; deletions may have shifted the
		// boundary, so resolve the branches separately instead.
		newThen, _ := t.visitList(c.Then)
		newElse, _ := t.visitList(c.Else)
		return c.rebuildBranches(newThen, newElse)
	}
	return n.Rebuild(children...)
}

// validateMapping rejects cycles between distinct keys: following
// "replacement contains key" edges must never lead back to the starting
// key through another one. Direct self-containment is the wrap idiom and
// is allowed, since replacements are spliced without re-substitution.
func validateMapping(m Mapping) error {
	contains := make(map[NodeID][]NodeID, len(m))
	for key, rep := range m {
		if rep == nil {
			continue
		}
		walk(rep, func(n Node) {
			id := n.ID()
			if id == key {
				return
			}
			if _, isKey := m[id]; isKey {
				contains[key] = append(contains[key], id)
			}
		})
	}

	const (
		unvisited = iota
		inStack
		done
	)
	state := make(map[NodeID]int, len(m))
	var dfs func(id NodeID) bool
	dfs = func(id NodeID) bool {
		state[id] = inStack
		for _, next := range contains[id] {
			switch state[next] {
			case inStack:
				return false
			case unvisited:
				if !dfs(next) {
					return false
				}
			}
		}
		state[id] = done
		return true
	}
	for key := range m {
		if state[key] == unvisited && !dfs(key) {
			return fmt.Errorf("key %d: %w", key, ErrMalformedMapping)
		}
	}
	return nil
}
