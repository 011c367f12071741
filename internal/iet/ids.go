package iet

import "sync/atomic"

// NodeID is the per-instance handle of a tree node. Rewrite mappings key
// on it, so two structurally identical nodes built separately never
// collide: every constructed or rebuilt node draws a fresh ID.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

var lastNodeID atomic.Uint32

func nextNodeID() NodeID {
	return NodeID(lastNodeID.Add(1))
}
