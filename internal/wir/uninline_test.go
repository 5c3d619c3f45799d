package wir

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"wagner/internal/signal"
)

type counts map[signal.NodeID]uint32

func (c counts) Count(sig signal.NodeID) uint32 { return c[sig] }

// buildShared returns x = IN_0 shared by both operands of a BinaryOp, plus a
// UnitDelay used once.
func buildShared(m *Module) (root NodeID, env *Table) {
	env = NewTable()
	in0 := m.InputVar(0)
	env.Insert(1, in0)
	delay := m.UnitDelay(m.Reference(in0, 1))
	env.Insert(2, delay)
	add := m.BinaryOp("+", m.Reference(delay, 2), m.Reference(in0, 1))
	env.Insert(3, add)
	return m.Reference(add, 3), env
}

func TestUninlineReplacesSingleUseReferences(t *testing.T) {
	m := NewModule()
	root, _ := buildShared(m)
	c := counts{1: 2, 2: 1, 3: 1}

	root = Uninline(m, root, c)
	if got, want := Render(m, root), "(mem(P[1]) + P[1])"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestUninlineIsIdempotent(t *testing.T) {
	m := NewModule()
	root, env := buildShared(m)
	c := counts{1: 2, 2: 1, 3: 1}

	once := Uninline(m, root, c)
	UninlineTable(m, env, c)
	firstRoot, firstEnv := Render(m, once), RenderTable(m, env)

	twice := Uninline(m, once, c)
	UninlineTable(m, env, c)
	if diff := cmp.Diff(firstRoot, Render(m, twice)); diff != "" {
		t.Fatalf("second pass changed root (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstEnv, RenderTable(m, env)); diff != "" {
		t.Fatalf("second pass changed env (-first +second):\n%s", diff)
	}
}

func TestUninlineKeepsOnlySharedReferences(t *testing.T) {
	m := NewModule()
	root, _ := buildShared(m)
	c := counts{1: 2, 2: 1, 3: 1}
	root = Uninline(m, root, c)

	var walk func(NodeID)
	walk = func(id NodeID) {
		if ref, ok := m.Node(id).Data.(*ReferenceData); ok && c[ref.Signal] <= 1 {
			t.Fatalf("reference to %d survived with count %d", ref.Signal, c[ref.Signal])
		}
		for _, k := range m.Children(id) {
			walk(k)
		}
	}
	walk(root)
}

func TestUninlineDescendsIntoFeedbackAndOutputs(t *testing.T) {
	m := NewModule()
	in0 := m.InputVar(0)
	inner := NewTable()
	sum := m.BinaryOp("+", m.BoundRef(0), m.Reference(in0, 5))
	inner.Insert(6, sum)
	fb := m.Feedback(m.Reference(sum, 6), inner)
	out := m.OutputVar(0, m.Reference(fb, 7))
	tup := m.Tuple(out, m.FunctionCall("f", m.Reference(in0, 5)))

	root := Uninline(m, tup, counts{5: 1, 6: 1, 7: 1})
	want := "(OUT0Feed = \nlet [6] = (REF[0] + IN_0) in\n\n(REF[0] + IN_0)\n,f(IN_0),)"
	if got := Render(m, root); got != want {
		t.Fatalf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestUninlineWithoutCountsIsNoop(t *testing.T) {
	m := NewModule()
	root, _ := buildShared(m)
	before := Render(m, root)
	if got := Render(m, Uninline(m, root, nil)); got != before {
		t.Fatalf("Render() = %q, want %q", got, before)
	}
}
