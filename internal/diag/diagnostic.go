package diag

import "wagner/internal/signal"

// Note adds context to a diagnostic, optionally pointing at another node.
type Note struct {
	Node signal.NodeID
	Msg  string
}

// Diagnostic is a single finding. Locations are signal nodes: the translator
// has no source text, only the graph it was handed.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Node     signal.NodeID
	Notes    []Note
}

func New(sev Severity, code Code, node signal.NodeID, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Node:     node,
		Message:  msg,
	}
}

func NewWarning(code Code, node signal.NodeID, msg string) Diagnostic {
	return New(SevWarning, code, node, msg)
}

func (d Diagnostic) WithNote(node signal.NodeID, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Node: node, Msg: msg})
	return d
}
