package translate

import (
	"fmt"

	"wagner/internal/diag"
	"wagner/internal/signal"
	"wagner/internal/wir"
)

type builtin struct {
	name  string
	arity int
}

// Shapes that lower to a FunctionCall with a fixed operand count. Table ids
// are not operands.
var builtinCalls = map[signal.Shape]builtin{
	signal.ShapePrefix:         {"prefix", 2},
	signal.ShapeIota:           {"iota", 1},
	signal.ShapeTable:          {"table", 2},
	signal.ShapeWRTbl:          {"write", 3},
	signal.ShapeRDTbl:          {"read", 2},
	signal.ShapeDocConstantTbl: {"DocConstantTbl", 2},
	signal.ShapeDocWriteTbl:    {"DocwriteTbl", 4},
	signal.ShapeDocAccessTbl:   {"DocaccessTbl", 2},
	signal.ShapeSelect2:        {"select2", 3},
	signal.ShapeSelect3:        {"select3", 4},
	signal.ShapeIntCast:        {"int", 1},
	signal.ShapeFloatCast:      {"float", 1},
	signal.ShapeAttach:         {"attach", 2},
}

var uiControls = map[signal.Shape]builtin{
	signal.ShapeButton:    {"button", 0},
	signal.ShapeCheckbox:  {"checkbox", 0},
	signal.ShapeVSlider:   {"vslider", 4},
	signal.ShapeHSlider:   {"hslider", 4},
	signal.ShapeNumEntry:  {"nentry", 4},
	signal.ShapeVBargraph: {"vbargraph", 3},
	signal.ShapeHBargraph: {"hbargraph", 3},
}

// Text of every waveform literal; samples are not translated.
const waveformText = "waveform{...}"

// Translate returns the IR for sig. A miss binds the constructed node in the
// innermost open scope and returns a fresh Reference to it; a hit follows the
// context's HitPolicy.
func (c *Context) Translate(g signal.Lookup, sig signal.NodeID) wir.NodeID {
	c.Counts.Inc(sig)

	if cached, _, ok := c.Scopes.Lookup(sig); ok {
		c.stats.Hits++
		if c.hits == HitRaw {
			return cached
		}
		return c.IR.Reference(cached, sig)
	}

	built := c.construct(g, sig, g.Classify(sig))
	c.stats.Constructed++
	if t := c.Scopes.Innermost(); t != nil {
		t.Insert(sig, built)
	}
	return c.IR.Reference(built, sig)
}

func (c *Context) construct(g signal.Lookup, sig signal.NodeID, m signal.Match) wir.NodeID {
	ir := c.IR

	switch m.Shape {
	case signal.ShapeSingleton, signal.ShapeGen:
		return c.operand(g, sig, m, 0)

	case signal.ShapeList:
		return ir.Tuple(c.operands(g, sig, m, len(m.Kids))...)

	case signal.ShapeProj:
		return ir.Projection(c.operand(g, sig, m, 0), m.Index)

	case signal.ShapeRecNamed:
		c.stats.Legacy++
		c.warn(diag.WagLegacyRecursion, sig, fmt.Sprintf("recursive definition %q is not in de Bruijn form", m.Label))
		return ir.LegacyFeedback(c.operand(g, sig, m, 0), m.Label)

	case signal.ShapeRec:
		c.push(sig)
		body := c.operand(g, sig, m, 0)
		return ir.Feedback(body, c.pop(sig))

	case signal.ShapeRef:
		return ir.BoundRef(m.Index)

	case signal.ShapeXtended:
		return ir.FunctionCall(m.Label, c.operands(g, sig, m, m.Arity())...)

	case signal.ShapeInt:
		return ir.Integer(m.Int)

	case signal.ShapeReal:
		return ir.Double(m.Real)

	case signal.ShapeWaveform:
		return ir.Waveform(waveformText)

	case signal.ShapeInput:
		return ir.InputVar(m.Index)

	case signal.ShapeOutput:
		return ir.OutputVar(m.Index, c.operand(g, sig, m, 0))

	case signal.ShapeDelay1:
		return ir.UnitDelay(c.operand(g, sig, m, 0))

	case signal.ShapeFixDelay:
		x := c.operand(g, sig, m, 0)
		return ir.VariableDelay(x, c.operand(g, sig, m, 1))

	case signal.ShapeFFun:
		// the argument list is one operand
		return ir.FunctionCall(m.Label, c.operand(g, sig, m, 0))

	case signal.ShapeBinOp:
		if !m.Op.Valid() {
			c.warn(diag.WagUnknownOperator, sig, fmt.Sprintf("unknown operator code %d", uint8(m.Op)))
		}
		x := c.operand(g, sig, m, 0)
		return ir.BinaryOp(m.Op.String(), x, c.operand(g, sig, m, 1))

	case signal.ShapeFConst, signal.ShapeFVar:
		return ir.Waveform(m.Label)

	case signal.ShapePrefix, signal.ShapeIota, signal.ShapeTable, signal.ShapeWRTbl,
		signal.ShapeRDTbl, signal.ShapeDocConstantTbl, signal.ShapeDocWriteTbl,
		signal.ShapeDocAccessTbl, signal.ShapeSelect2, signal.ShapeSelect3,
		signal.ShapeIntCast, signal.ShapeFloatCast, signal.ShapeAttach:
		fn := builtinCalls[m.Shape]
		return ir.FunctionCall(fn.name, c.operands(g, sig, m, fn.arity)...)

	case signal.ShapeButton, signal.ShapeCheckbox, signal.ShapeVSlider, signal.ShapeHSlider,
		signal.ShapeNumEntry, signal.ShapeVBargraph, signal.ShapeHBargraph:
		ui := uiControls[m.Shape]
		return ir.UIControl(ui.name, m.Label, c.operands(g, sig, m, ui.arity)...)

	case signal.ShapeUnknown:
		return c.unsupported(g, sig)
	}
	return c.unsupported(g, sig)
}

// operand translates the j-th child of sig. A shape that promises more
// children than the graph delivers gets an Error leaf in that slot.
func (c *Context) operand(g signal.Lookup, sig signal.NodeID, m signal.Match, j int) wir.NodeID {
	kid := m.Branch(j)
	if !kid.IsValid() {
		c.stats.Errors++
		c.warn(diag.WagMissingBranch, sig, fmt.Sprintf("%s node has no operand %d", m.Shape, j))
		return c.IR.Error(fmt.Sprintf("missing operand %d of %s", j, g.Text(sig)))
	}
	return c.Translate(g, kid)
}

func (c *Context) operands(g signal.Lookup, sig signal.NodeID, m signal.Match, n int) []wir.NodeID {
	if n <= 0 {
		return nil
	}
	out := make([]wir.NodeID, n)
	for j := range n {
		out[j] = c.operand(g, sig, m, j)
	}
	return out
}

func (c *Context) unsupported(g signal.Lookup, sig signal.NodeID) wir.NodeID {
	text := g.Text(sig)
	c.stats.Errors++
	c.warn(diag.WagUnsupportedConstruct, sig, "unsupported signal "+text)
	return c.IR.Error(text)
}
