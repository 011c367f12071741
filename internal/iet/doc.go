// Package iet implements the loop-nest tree that stencil kernels are
// lowered into before code emission: expressions, loops, conditionals,
// grouping blocks and callables, plus the structural analyses and the
// identity-keyed rewriting engine that passes build on.
//
// Trees are immutable once built. Every rewrite produces a new tree and
// may share untouched subtrees with its input, which makes concurrent
// read-only traversal of the same tree safe. Rewrite mappings key on
// per-instance node IDs, never on structure, so two structurally equal
// nodes built separately are always distinct.
package iet
