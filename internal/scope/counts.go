package scope

import (
	"slices"

	"wagner/internal/signal"
)

// Counts records how many times each signal node was visited. Counts only
// grow during a translation run.
type Counts struct {
	visits map[signal.NodeID]uint32
	total  uint64
}

// NewCounts creates an empty counter.
func NewCounts() *Counts {
	return &Counts{visits: make(map[signal.NodeID]uint32)}
}

// Inc records one visit of sig and returns the new count.
func (c *Counts) Inc(sig signal.NodeID) uint32 {
	c.visits[sig]++
	c.total++
	return c.visits[sig]
}

// Count returns the number of recorded visits of sig.
func (c *Counts) Count(sig signal.NodeID) uint32 {
	if c == nil {
		return 0
	}
	return c.visits[sig]
}

// Len returns the number of distinct signal nodes visited.
func (c *Counts) Len() int {
	if c == nil {
		return 0
	}
	return len(c.visits)
}

// Total returns the number of visits across all nodes.
func (c *Counts) Total() uint64 {
	if c == nil {
		return 0
	}
	return c.total
}

// Shared returns, in ascending order, every signal node visited more than
// once.
func (c *Counts) Shared() []signal.NodeID {
	if c == nil {
		return nil
	}
	var out []signal.NodeID
	for sig, n := range c.visits {
		if n > 1 {
			out = append(out, sig)
		}
	}
	slices.Sort(out)
	return out
}
