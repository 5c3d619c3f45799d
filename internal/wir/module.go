package wir

import (
	"wagner/internal/arena"
	"wagner/internal/signal"
)

// Module is the arena that owns every node of one translation. Nodes are
// never freed individually; sharing a NodeID between parents is always safe.
type Module struct {
	nodes *arena.Arena[Node]
}

// NewModule creates an empty module.
func NewModule() *Module {
	return &Module{nodes: arena.New[Node](128)}
}

// Node returns the node for id, or nil for an invalid handle.
func (m *Module) Node(id NodeID) *Node {
	if m == nil || m.nodes == nil {
		return nil
	}
	return m.nodes.Get(uint32(id))
}

// Kind returns the kind of id. Invalid handles report KindError.
func (m *Module) Kind(id NodeID) Kind {
	if n := m.Node(id); n != nil {
		return n.Kind
	}
	return KindError
}

// Len returns the number of allocated nodes.
func (m *Module) Len() int { return int(m.nodes.Len()) }

func (m *Module) add(kind Kind, data NodeData) NodeID {
	return NodeID(m.nodes.Allocate(Node{Kind: kind, Data: data}))
}

// Reference wraps inner and tags it with the signal node it was built from.
func (m *Module) Reference(inner NodeID, sig signal.NodeID) NodeID {
	return m.add(KindReference, &ReferenceData{Inner: inner, Signal: sig})
}

func (m *Module) Integer(v int64) NodeID {
	return m.add(KindInteger, &IntegerData{Value: v})
}

func (m *Module) Double(v float64) NodeID {
	return m.add(KindDouble, &DoubleData{Value: v})
}

func (m *Module) InputVar(index int) NodeID {
	return m.add(KindInputVar, &InputVarData{Index: index})
}

func (m *Module) OutputVar(index int, inner NodeID) NodeID {
	return m.add(KindOutputVar, &OutputVarData{Index: index, Inner: inner})
}

func (m *Module) Waveform(text string) NodeID {
	return m.add(KindWaveform, &WaveformData{Text: text})
}

func (m *Module) BinaryOp(op string, left, right NodeID) NodeID {
	return m.add(KindBinaryOp, &BinaryOpData{Op: op, Left: left, Right: right})
}

func (m *Module) Projection(inner NodeID, index int) NodeID {
	return m.add(KindProjection, &ProjectionData{Inner: inner, Index: index})
}

func (m *Module) UnitDelay(inner NodeID) NodeID {
	return m.add(KindUnitDelay, &UnitDelayData{Inner: inner})
}

func (m *Module) VariableDelay(sig, amount NodeID) NodeID {
	return m.add(KindVariableDelay, &VariableDelayData{Signal: sig, Amount: amount})
}

// Feedback binds body together with the table of its scope. A nil table is
// replaced by an empty one.
func (m *Module) Feedback(body NodeID, table *Table) NodeID {
	if table == nil {
		table = NewTable()
	}
	return m.add(KindFeedback, &FeedbackData{Body: body, Table: table})
}

func (m *Module) LegacyFeedback(body NodeID, name string) NodeID {
	return m.add(KindLegacyFeedback, &LegacyFeedbackData{Body: body, Name: name})
}

func (m *Module) BoundRef(index int) NodeID {
	return m.add(KindBoundRef, &BoundRefData{Index: index})
}

func (m *Module) Tuple(elems ...NodeID) NodeID {
	return m.add(KindTuple, &TupleData{Elems: elems})
}

func (m *Module) FunctionCall(name string, args ...NodeID) NodeID {
	return m.add(KindFunctionCall, &FunctionCallData{Name: name, Args: args})
}

func (m *Module) UIControl(name, label string, args ...NodeID) NodeID {
	return m.add(KindUIControl, &UIControlData{Name: name, Label: label, Args: args})
}

func (m *Module) Error(text string) NodeID {
	return m.add(KindError, &ErrorData{Text: text})
}

// Children returns the direct child handles of id in operand order. A
// Feedback's children are its body only; table entries are reached through
// Table.
func (m *Module) Children(id NodeID) []NodeID {
	n := m.Node(id)
	if n == nil {
		return nil
	}
	switch d := n.Data.(type) {
	case *ReferenceData:
		return []NodeID{d.Inner}
	case *OutputVarData:
		return []NodeID{d.Inner}
	case *BinaryOpData:
		return []NodeID{d.Left, d.Right}
	case *ProjectionData:
		return []NodeID{d.Inner}
	case *UnitDelayData:
		return []NodeID{d.Inner}
	case *VariableDelayData:
		return []NodeID{d.Signal, d.Amount}
	case *FeedbackData:
		return []NodeID{d.Body}
	case *LegacyFeedbackData:
		return []NodeID{d.Body}
	case *TupleData:
		return d.Elems
	case *FunctionCallData:
		return d.Args
	case *UIControlData:
		return d.Args
	default:
		return nil
	}
}
