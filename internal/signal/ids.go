// Package signal provides an in-memory signal graph: the normalized DAG of
// audio-signal expressions that the translator consumes.
//
// Nodes are addressed by NodeID handles into an arena. Identity is the
// handle itself: two nodes built by separate constructor calls are distinct
// even when structurally equal, and sharing is expressed by passing the same
// NodeID to several parents. Constructors only accept existing children, so a
// Graph is acyclic by construction; recursion is expressed with de Bruijn
// binders (Rec) and back-references (Ref) instead of cyclic pointers.
package signal

import "strconv"

// NodeID identifies a signal node within a Graph.
type NodeID uint32

// NoNodeID is the zero sentinel; it never names a real node.
const NoNodeID NodeID = 0

// IsValid returns true if the ID is non-zero.
func (id NodeID) IsValid() bool { return id != NoNodeID }

func (id NodeID) String() string { return strconv.FormatUint(uint64(id), 10) }
