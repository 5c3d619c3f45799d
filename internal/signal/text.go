package signal

import (
	"strconv"
	"strings"
)

// textDepth bounds how far Text descends; shared sub-graphs would otherwise
// be printed once per path.
const textDepth = 4

// Text renders id in a compact prefix form, for diagnostics and for the
// payload of unrecognized nodes. Descent is cut at a fixed depth and the
// remaining children print as "#<id>".
func (g *Graph) Text(id NodeID) string {
	var b strings.Builder
	g.writeText(&b, id, textDepth)
	return b.String()
}

func (g *Graph) writeText(b *strings.Builder, id NodeID, depth int) {
	n := g.get(id)
	if n == nil {
		b.WriteString("nil")
		return
	}
	if depth == 0 {
		b.WriteString("#")
		b.WriteString(id.String())
		return
	}
	switch n.op {
	case OpInt:
		b.WriteString(strconv.FormatInt(n.ival, 10))
		return
	case OpReal:
		b.WriteString(strconv.FormatFloat(n.rval, 'g', -1, 64))
		return
	case OpSymbol:
		b.WriteString(n.text)
		if len(n.kids) == 0 {
			return
		}
	case OpList:
		if len(n.kids) == 0 {
			b.WriteString("nil")
			return
		}
		b.WriteString("list")
	case OpBinOp:
		b.WriteString(n.binop.String())
	case OpApply:
		b.WriteString(n.text)
	default:
		b.WriteString(n.op.String())
	}

	var attrs []string
	switch n.op {
	case OpProj, OpRef, OpInput, OpOutput:
		attrs = append(attrs, strconv.Itoa(n.index))
	case OpRec, OpFFun, OpFConst, OpFVar, OpTable, OpWRTbl,
		OpButton, OpCheckbox, OpVSlider, OpHSlider, OpNumEntry, OpVBargraph, OpHBargraph:
		if n.text != "" {
			attrs = append(attrs, strconv.Quote(n.text))
		}
	}
	if len(attrs) == 0 && len(n.kids) == 0 {
		return
	}
	b.WriteByte('(')
	sep := false
	for _, a := range attrs {
		if sep {
			b.WriteByte(',')
		}
		b.WriteString(a)
		sep = true
	}
	for _, k := range n.kids {
		if sep {
			b.WriteByte(',')
		}
		g.writeText(b, k, depth-1)
		sep = true
	}
	b.WriteByte(')')
}
