package wir

import "wagner/internal/signal"

// Node is a single WIR node.
type Node struct {
	Kind Kind
	Data NodeData // Kind-specific payload
}

// NodeData is the interface for node-specific payloads. Payloads are held by
// pointer so passes can rewrite child handles in place.
type NodeData interface {
	nodeData()
}

// ReferenceData holds data for KindReference.
type ReferenceData struct {
	Inner  NodeID
	Signal signal.NodeID
}

func (*ReferenceData) nodeData() {}

// IntegerData holds data for KindInteger.
type IntegerData struct {
	Value int64
}

func (*IntegerData) nodeData() {}

// DoubleData holds data for KindDouble.
type DoubleData struct {
	Value float64
}

func (*DoubleData) nodeData() {}

// InputVarData holds data for KindInputVar.
type InputVarData struct {
	Index int
}

func (*InputVarData) nodeData() {}

// OutputVarData holds data for KindOutputVar.
type OutputVarData struct {
	Index int
	Inner NodeID
}

func (*OutputVarData) nodeData() {}

// WaveformData holds data for KindWaveform.
type WaveformData struct {
	Text string
}

func (*WaveformData) nodeData() {}

// BinaryOpData holds data for KindBinaryOp.
type BinaryOpData struct {
	Op    string
	Left  NodeID
	Right NodeID
}

func (*BinaryOpData) nodeData() {}

// ProjectionData holds data for KindProjection.
type ProjectionData struct {
	Inner NodeID
	Index int
}

func (*ProjectionData) nodeData() {}

// UnitDelayData holds data for KindUnitDelay.
type UnitDelayData struct {
	Inner NodeID
}

func (*UnitDelayData) nodeData() {}

// VariableDelayData holds data for KindVariableDelay.
type VariableDelayData struct {
	Signal NodeID
	Amount NodeID
}

func (*VariableDelayData) nodeData() {}

// FeedbackData holds data for KindFeedback.
type FeedbackData struct {
	Body  NodeID
	Table *Table // bindings created inside the body's scope
}

func (*FeedbackData) nodeData() {}

// LegacyFeedbackData holds data for KindLegacyFeedback.
type LegacyFeedbackData struct {
	Body NodeID
	Name string
}

func (*LegacyFeedbackData) nodeData() {}

// BoundRefData holds data for KindBoundRef.
type BoundRefData struct {
	Index int // 0 = innermost enclosing Feedback
}

func (*BoundRefData) nodeData() {}

// TupleData holds data for KindTuple.
type TupleData struct {
	Elems []NodeID
}

func (*TupleData) nodeData() {}

// FunctionCallData holds data for KindFunctionCall.
type FunctionCallData struct {
	Name string
	Args []NodeID
}

func (*FunctionCallData) nodeData() {}

// UIControlData holds data for KindUIControl.
type UIControlData struct {
	Name  string // widget kind: button, vslider, ...
	Label string
	Args  []NodeID
}

func (*UIControlData) nodeData() {}

// ErrorData holds data for KindError.
type ErrorData struct {
	Text string
}

func (*ErrorData) nodeData() {}
