package wir

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Printer writes the canonical text form of WIR nodes.
type Printer struct {
	w   io.Writer
	m   *Module
	err error
}

// NewPrinter creates a printer for nodes of m.
func NewPrinter(w io.Writer, m *Module) *Printer {
	return &Printer{w: w, m: m}
}

// Render returns the canonical text of id.
func Render(m *Module, id NodeID) string {
	var b strings.Builder
	_ = NewPrinter(&b, m).PrintNode(id)
	return b.String()
}

// RenderTable returns the table dump of t.
func RenderTable(m *Module, t *Table) string {
	var b strings.Builder
	_ = NewPrinter(&b, m).PrintTable(t)
	return b.String()
}

// PrintNode writes id and returns the first write error.
func (p *Printer) PrintNode(id NodeID) error {
	p.node(id)
	return p.err
}

// PrintTable writes one `let [<sig>] = <expr> in` line per binding, ordered
// by signal identity.
func (p *Printer) PrintTable(t *Table) error {
	p.table(t)
	return p.err
}

// PrintProgram writes the program-level environment followed by the root.
func (p *Printer) PrintProgram(env *Table, root NodeID) error {
	p.printf("Initial env is:\n\n")
	p.table(env)
	p.printf("\nProgram is:\n\n")
	p.node(root)
	p.printf("\n")
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) table(t *Table) {
	for _, k := range t.Keys() {
		id, _ := t.Lookup(k)
		p.printf("let [%d] = ", k)
		p.node(id)
		p.write(" in\n")
	}
}

func (p *Printer) node(id NodeID) {
	n := p.m.Node(id)
	if n == nil {
		p.write("<nil>")
		return
	}
	switch d := n.Data.(type) {
	case *ReferenceData:
		p.printf("P[%d]", d.Signal)
	case *IntegerData:
		p.write(strconv.FormatInt(d.Value, 10))
	case *DoubleData:
		p.write(formatDouble(d.Value))
	case *InputVarData:
		p.printf("IN_%d", d.Index)
	case *OutputVarData:
		p.printf("OUT%d", d.Index)
		p.node(d.Inner)
	case *WaveformData:
		p.write(d.Text)
	case *BinaryOpData:
		p.write("(")
		p.node(d.Left)
		p.printf(" %s ", d.Op)
		p.node(d.Right)
		p.write(")")
	case *ProjectionData:
		p.write("(")
		p.node(d.Inner)
		p.printf(").%d", d.Index)
	case *UnitDelayData:
		p.write("mem(")
		p.node(d.Inner)
		p.write(")")
	case *VariableDelayData:
		p.node(d.Signal)
		p.write("@")
		p.node(d.Amount)
	case *FeedbackData:
		p.write("Feed = \n")
		p.table(d.Table)
		p.write("\n")
		p.node(d.Body)
		p.write("\n")
	case *LegacyFeedbackData:
		p.printf("Feed1 = %s ", d.Name)
		p.node(d.Body)
	case *BoundRefData:
		p.printf("REF[%d]", d.Index)
	case *TupleData:
		p.write("(")
		for _, e := range d.Elems {
			p.node(e)
			p.write(",")
		}
		p.write(")")
	case *FunctionCallData:
		p.write(d.Name)
		p.write("(")
		for i, a := range d.Args {
			if i > 0 {
				p.write(",")
			}
			p.node(a)
		}
		p.write(")")
	case *UIControlData:
		p.write(d.Name)
	case *ErrorData:
		p.printf("ERROR[%s]", d.Text)
	default:
		p.printf("<%s>", n.Kind)
	}
}

// formatDouble mimics the default iostream float output: six significant
// digits, shortest of fixed and exponent notation.
func formatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
