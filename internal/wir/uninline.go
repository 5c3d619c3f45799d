package wir

import "wagner/internal/signal"

// Counter reports how many times a signal node was visited during
// translation.
type Counter interface {
	Count(sig signal.NodeID) uint32
}

// Uninline rewrites the graph under root bottom-up: every Reference whose
// signal was visited exactly once is replaced by its (already rewritten)
// inner node. Child handles are updated in place and the new root is
// returned. Applying Uninline to its own result changes nothing.
func Uninline(m *Module, root NodeID, counts Counter) NodeID {
	u := newUninliner(m, counts)
	return u.rewrite(root)
}

// UninlineTable applies Uninline to every binding of t.
func UninlineTable(m *Module, t *Table, counts Counter) {
	u := newUninliner(m, counts)
	u.table(t)
}

type uninliner struct {
	m      *Module
	counts Counter
	done   map[NodeID]NodeID
	tables map[*Table]struct{}
}

func newUninliner(m *Module, counts Counter) *uninliner {
	return &uninliner{
		m:      m,
		counts: counts,
		done:   make(map[NodeID]NodeID),
		tables: make(map[*Table]struct{}),
	}
}

func (u *uninliner) table(t *Table) {
	if t == nil {
		return
	}
	if _, ok := u.tables[t]; ok {
		return
	}
	u.tables[t] = struct{}{}
	for _, k := range t.Keys() {
		id, _ := t.Lookup(k)
		t.set(k, u.rewrite(id))
	}
}

func (u *uninliner) rewrite(id NodeID) NodeID {
	if res, ok := u.done[id]; ok {
		return res
	}
	n := u.m.Node(id)
	if n == nil {
		return id
	}
	// Guard against re-entry; IR bodies are finite trees so this only
	// short-circuits shared nodes.
	u.done[id] = id
	res := id
	switch d := n.Data.(type) {
	case *ReferenceData:
		d.Inner = u.rewrite(d.Inner)
		if u.counts != nil && u.counts.Count(d.Signal) == 1 {
			res = d.Inner
		}
	case *OutputVarData:
		d.Inner = u.rewrite(d.Inner)
	case *BinaryOpData:
		d.Left = u.rewrite(d.Left)
		d.Right = u.rewrite(d.Right)
	case *ProjectionData:
		d.Inner = u.rewrite(d.Inner)
	case *UnitDelayData:
		d.Inner = u.rewrite(d.Inner)
	case *VariableDelayData:
		d.Signal = u.rewrite(d.Signal)
		d.Amount = u.rewrite(d.Amount)
	case *FeedbackData:
		u.table(d.Table)
		d.Body = u.rewrite(d.Body)
	case *LegacyFeedbackData:
		d.Body = u.rewrite(d.Body)
	case *TupleData:
		u.list(d.Elems)
	case *FunctionCallData:
		u.list(d.Args)
	case *UIControlData:
		u.list(d.Args)
	}
	u.done[id] = res
	return res
}

func (u *uninliner) list(ids []NodeID) {
	for i, k := range ids {
		ids[i] = u.rewrite(k)
	}
}

// UninlineProgram rewrites the outermost table and the program root in one
// pass, so nodes shared between them are rewritten once.
func UninlineProgram(m *Module, env *Table, root NodeID, counts Counter) NodeID {
	u := newUninliner(m, counts)
	u.table(env)
	return u.rewrite(root)
}
