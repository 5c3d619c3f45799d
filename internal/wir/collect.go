package wir

import "wagner/internal/signal"

// Collect marks every signal identity reachable from root through Reference
// wrappers into visited. Feedback bodies are followed; their tables are not,
// so only bindings actually used by the body are counted.
func Collect(m *Module, root NodeID, visited map[signal.NodeID]struct{}) {
	c := collector{m: m, visited: visited, seen: make(map[NodeID]struct{})}
	c.walk(root)
}

type collector struct {
	m       *Module
	visited map[signal.NodeID]struct{}
	seen    map[NodeID]struct{}
}

func (c *collector) walk(id NodeID) {
	if _, ok := c.seen[id]; ok {
		return
	}
	c.seen[id] = struct{}{}
	n := c.m.Node(id)
	if n == nil {
		return
	}
	if ref, ok := n.Data.(*ReferenceData); ok {
		if _, done := c.visited[ref.Signal]; done {
			return
		}
		c.visited[ref.Signal] = struct{}{}
	}
	for _, k := range c.m.Children(id) {
		c.walk(k)
	}
}
