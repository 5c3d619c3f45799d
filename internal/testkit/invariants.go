package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"wagner/internal/wir"
)

// CheckIRInvariants runs the structural invariants of a translated program:
// 1) every handle reachable from root or env points into the module
// 2) the graph under root is acyclic
// 3) every Feedback node owns a non-nil table
// 4) every Reference carries a valid signal identity
func CheckIRInvariants(m *wir.Module, root wir.NodeID, env *wir.Table) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	limit, err := safecast.Conv[uint32](m.Len())
	if err != nil {
		return fmt.Errorf("module size overflow: %w", err)
	}
	c := irChecker{m: m, limit: wir.NodeID(limit), state: make(map[wir.NodeID]uint8)}
	if err := c.walk(root); err != nil {
		return err
	}
	if env == nil {
		return nil
	}
	for _, k := range env.Keys() {
		id, _ := env.Lookup(k)
		if err := c.walk(id); err != nil {
			return fmt.Errorf("env binding %d: %w", k, err)
		}
	}
	return nil
}

// CheckInlined verifies that after the uninline pass every Reference still
// reachable from root stands for a signal visited more than once.
func CheckInlined(m *wir.Module, root wir.NodeID, counts wir.Counter) error {
	var err error
	seen := make(map[wir.NodeID]struct{})
	var walk func(id wir.NodeID)
	walk = func(id wir.NodeID) {
		if err != nil {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		n := m.Node(id)
		if n == nil {
			return
		}
		if ref, ok := n.Data.(*wir.ReferenceData); ok {
			if c := counts.Count(ref.Signal); c <= 1 {
				err = fmt.Errorf("reference to signal %d survived inlining with count %d", ref.Signal, c)
				return
			}
		}
		if fb, ok := n.Data.(*wir.FeedbackData); ok && fb.Table != nil {
			for _, k := range fb.Table.Keys() {
				b, _ := fb.Table.Lookup(k)
				walk(b)
			}
		}
		for _, k := range m.Children(id) {
			walk(k)
		}
	}
	walk(root)
	return err
}

const (
	visiting uint8 = 1
	done     uint8 = 2
)

type irChecker struct {
	m     *wir.Module
	limit wir.NodeID
	state map[wir.NodeID]uint8
}

func (c *irChecker) walk(id wir.NodeID) error {
	switch c.state[id] {
	case done:
		return nil
	case visiting:
		return fmt.Errorf("cycle through node %d", id)
	}
	if !id.IsValid() || id > c.limit {
		return fmt.Errorf("handle %d outside module of %d nodes", id, c.limit)
	}
	n := c.m.Node(id)
	if n == nil {
		return fmt.Errorf("nil node for id=%d", id)
	}
	c.state[id] = visiting
	switch d := n.Data.(type) {
	case *wir.ReferenceData:
		if !d.Signal.IsValid() {
			return fmt.Errorf("reference %d has no signal", id)
		}
	case *wir.FeedbackData:
		if d.Table == nil {
			return fmt.Errorf("feedback %d has nil table", id)
		}
		for _, k := range d.Table.Keys() {
			b, _ := d.Table.Lookup(k)
			if err := c.walk(b); err != nil {
				return fmt.Errorf("feedback %d binding %d: %w", id, k, err)
			}
		}
	}
	for _, k := range c.m.Children(id) {
		if err := c.walk(k); err != nil {
			return err
		}
	}
	c.state[id] = done
	return nil
}
