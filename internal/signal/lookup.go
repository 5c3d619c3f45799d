package signal

// Lookup is the read-only view of a signal graph that translation needs.
// *Graph implements it; front ends with their own node store can too.
type Lookup interface {
	// Classify returns the first matching shape of id with its operands.
	Classify(id NodeID) Match
	// Text renders id for diagnostics and Error leaves.
	Text(id NodeID) string
}

var _ Lookup = (*Graph)(nil)
