// Package wir provides the Wagner Intermediate Representation.
//
// WIR is the target-independent form produced from a signal graph. Nodes live
// in a Module arena and are addressed by NodeID; any number of parents may
// share a node, so the IR is a DAG rather than a tree. Sharing is made
// explicit with Reference nodes that remember the signal node they stand for.
// Recursion never produces cycles: a Feedback node owns the scope table of
// its body, and back-edges inside the body are BoundRef indices.
//
// Three operations are defined over every variant:
//   - Collect: reachability marking through Reference wrappers
//   - Uninline: replacing single-use Reference wrappers by their target
//   - Printer: the canonical text rendering
package wir

import "strconv"

// NodeID identifies a node within a Module.
type NodeID uint32

// NoNodeID is the zero sentinel.
const NoNodeID NodeID = 0

// IsValid returns true if the ID is valid (non-zero).
func (id NodeID) IsValid() bool { return id != NoNodeID }

func (id NodeID) String() string { return strconv.FormatUint(uint64(id), 10) }
