package testkit

import (
	"testing"

	"wagner/internal/signal"
	"wagner/internal/wir"
)

type counts map[signal.NodeID]uint32

func (c counts) Count(sig signal.NodeID) uint32 { return c[sig] }

func TestCheckIRInvariantsAcceptsSharedDAG(t *testing.T) {
	m := wir.NewModule()
	in0 := m.InputVar(0)
	env := wir.NewTable()
	env.Insert(1, in0)
	add := m.BinaryOp("+", m.Reference(in0, 1), m.Reference(in0, 1))
	fb := m.Feedback(add, wir.NewTable())
	if err := CheckIRInvariants(m, fb, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckIRInvariantsRejectsBadHandle(t *testing.T) {
	m := wir.NewModule()
	bad := m.UnitDelay(wir.NodeID(42))
	if err := CheckIRInvariants(m, bad, nil); err == nil {
		t.Fatalf("expected dangling handle error")
	}
}

func TestCheckIRInvariantsRejectsCycle(t *testing.T) {
	m := wir.NewModule()
	d := m.UnitDelay(wir.NoNodeID)
	m.Node(d).Data.(*wir.UnitDelayData).Inner = d
	if err := CheckIRInvariants(m, d, nil); err == nil {
		t.Fatalf("expected cycle error")
	}
}

func TestCheckInlined(t *testing.T) {
	m := wir.NewModule()
	in0 := m.InputVar(0)
	root := m.UnitDelay(m.Reference(in0, 1))
	if err := CheckInlined(m, root, counts{1: 2}); err != nil {
		t.Fatalf("shared reference is allowed: %v", err)
	}
	if err := CheckInlined(m, root, counts{1: 1}); err == nil {
		t.Fatalf("single-use reference must be reported")
	}
}
