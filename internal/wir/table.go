package wir

import (
	"slices"

	"wagner/internal/signal"
)

// Table maps signal identities to the WIR node constructed for them within
// one scope: either a Feedback body or the whole program.
type Table struct {
	entries map[signal.NodeID]NodeID
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[signal.NodeID]NodeID)}
}

// Lookup returns the node bound to sig.
func (t *Table) Lookup(sig signal.NodeID) (NodeID, bool) {
	if t == nil {
		return NoNodeID, false
	}
	id, ok := t.entries[sig]
	return id, ok
}

// Insert binds sig to id. An existing binding is kept and Insert reports
// false.
func (t *Table) Insert(sig signal.NodeID, id NodeID) bool {
	if _, ok := t.entries[sig]; ok {
		return false
	}
	t.entries[sig] = id
	return true
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns the bound signal identities in ascending order.
func (t *Table) Keys() []signal.NodeID {
	if t == nil {
		return nil
	}
	keys := make([]signal.NodeID, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (t *Table) set(sig signal.NodeID, id NodeID) {
	t.entries[sig] = id
}
