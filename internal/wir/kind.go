package wir

// Kind enumerates WIR node variants.
type Kind uint8

const (
	// KindReference stands for a shared node; it carries the originating
	// signal identity.
	KindReference Kind = iota
	KindInteger
	KindDouble
	// KindInputVar reads input channel Index.
	KindInputVar
	// KindOutputVar writes Inner to output channel Index.
	KindOutputVar
	// KindWaveform is a literal rendered by its text (waveforms, foreign
	// constants and foreign variables).
	KindWaveform
	KindBinaryOp
	KindProjection
	// KindUnitDelay is the one-sample delay.
	KindUnitDelay
	// KindVariableDelay delays a signal by an amount signal.
	KindVariableDelay
	// KindFeedback is a de Bruijn recursive binder together with the scope
	// table built while translating its body.
	KindFeedback
	// KindLegacyFeedback is the fallback for the named recursive binder.
	KindLegacyFeedback
	// KindBoundRef is a back-reference to an enclosing Feedback.
	KindBoundRef
	KindTuple
	KindFunctionCall
	KindUIControl
	KindError
)

// String returns a human-readable name for the node kind.
func (k Kind) String() string {
	switch k {
	case KindReference:
		return "Reference"
	case KindInteger:
		return "Integer"
	case KindDouble:
		return "Double"
	case KindInputVar:
		return "InputVar"
	case KindOutputVar:
		return "OutputVar"
	case KindWaveform:
		return "Waveform"
	case KindBinaryOp:
		return "BinaryOp"
	case KindProjection:
		return "Projection"
	case KindUnitDelay:
		return "UnitDelay"
	case KindVariableDelay:
		return "VariableDelay"
	case KindFeedback:
		return "Feedback"
	case KindLegacyFeedback:
		return "LegacyFeedback"
	case KindBoundRef:
		return "BoundRef"
	case KindTuple:
		return "Tuple"
	case KindFunctionCall:
		return "FunctionCall"
	case KindUIControl:
		return "UIControl"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}
