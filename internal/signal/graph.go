package signal

import (
	"fmt"

	"wagner/internal/arena"
)

// Primitive describes an extended primitive (a foreign operator with its own
// name and arity) attached to a node as user data.
type Primitive struct {
	Name  string
	Arity int
}

type node struct {
	op    Op
	kids  []NodeID
	ival  int64   // integer constant
	rval  float64 // real constant
	index int     // input/output/projection/back-reference index
	text  string  // label, function name, table id, recursion variable, symbol name
	binop BinOp
	prim  *Primitive
}

// Graph owns the nodes of one signal program.
// The zero value is not usable; call NewGraph.
type Graph struct {
	nodes *arena.Arena[node]
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: arena.New[node](64)}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return int(g.nodes.Len()) }

// Nodes returns every node handle in allocation order (children first).
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, 0, g.Len())
	for i := uint32(1); i <= g.nodes.Len(); i++ {
		out = append(out, NodeID(i))
	}
	return out
}

// Op returns the raw operator of id, or OpSymbol for an invalid handle.
func (g *Graph) Op(id NodeID) Op {
	n := g.get(id)
	if n == nil {
		return OpSymbol
	}
	return n.op
}

// Kids returns the children of id. READONLY.
func (g *Graph) Kids(id NodeID) []NodeID {
	n := g.get(id)
	if n == nil {
		return nil
	}
	return n.kids
}

// Annotate attaches primitive user data to an existing node. A node carrying
// a primitive classifies as ShapeXtended unless a structural shape (list,
// projection, binder, back-reference) matches first.
func (g *Graph) Annotate(id NodeID, p *Primitive) {
	if n := g.get(id); n != nil {
		n.prim = p
	}
}

func (g *Graph) get(id NodeID) *node {
	if g == nil || g.nodes == nil {
		return nil
	}
	return g.nodes.Get(uint32(id))
}

func (g *Graph) add(n node) NodeID {
	for i, k := range n.kids {
		if g.get(k) == nil {
			panic(fmt.Errorf("signal: %s child %d refers to unknown node %d", n.op, i, k))
		}
	}
	return NodeID(g.nodes.Allocate(n))
}

// Symbol builds an opaque node. It never matches a known shape.
func (g *Graph) Symbol(name string, kids ...NodeID) NodeID {
	return g.add(node{op: OpSymbol, text: name, kids: kids})
}

// List builds a list node. One element is transparent; an empty list is
// unrecognized.
func (g *Graph) List(elems ...NodeID) NodeID {
	return g.add(node{op: OpList, kids: elems})
}

// Proj selects output index of a multi-output expression.
func (g *Graph) Proj(index int, x NodeID) NodeID {
	return g.add(node{op: OpProj, index: index, kids: []NodeID{x}})
}

// Rec builds a de Bruijn recursive binder around body.
func (g *Graph) Rec(body NodeID) NodeID {
	return g.add(node{op: OpRec, kids: []NodeID{body}})
}

// RecNamed builds the legacy recursive binder that names its variable.
func (g *Graph) RecNamed(name string, body NodeID) NodeID {
	if name == "" {
		name = "_"
	}
	return g.add(node{op: OpRec, text: name, kids: []NodeID{body}})
}

// Ref builds a back-reference to the index-th enclosing Rec (0 = innermost).
func (g *Graph) Ref(index int) NodeID {
	return g.add(node{op: OpRef, index: index})
}

// Apply builds an application of an extended primitive.
// Panics when len(args) does not match p.Arity.
func (g *Graph) Apply(p *Primitive, args ...NodeID) NodeID {
	if p == nil {
		panic("signal: Apply with nil primitive")
	}
	if len(args) != p.Arity {
		panic(fmt.Errorf("signal: primitive %s expects %d arguments, got %d", p.Name, p.Arity, len(args)))
	}
	return g.add(node{op: OpApply, text: p.Name, kids: args, prim: p})
}

func (g *Graph) Int(v int64) NodeID      { return g.add(node{op: OpInt, ival: v}) }
func (g *Graph) Real(v float64) NodeID   { return g.add(node{op: OpReal, rval: v}) }
func (g *Graph) Input(index int) NodeID  { return g.add(node{op: OpInput, index: index}) }
func (g *Graph) Delay1(x NodeID) NodeID  { return g.add(node{op: OpDelay1, kids: []NodeID{x}}) }
func (g *Graph) Iota(x NodeID) NodeID    { return g.add(node{op: OpIota, kids: []NodeID{x}}) }
func (g *Graph) Gen(x NodeID) NodeID     { return g.add(node{op: OpGen, kids: []NodeID{x}}) }
func (g *Graph) IntCast(x NodeID) NodeID { return g.add(node{op: OpIntCast, kids: []NodeID{x}}) }

func (g *Graph) FloatCast(x NodeID) NodeID {
	return g.add(node{op: OpFloatCast, kids: []NodeID{x}})
}

// Waveform builds a waveform literal from its sample values.
func (g *Graph) Waveform(samples ...NodeID) NodeID {
	return g.add(node{op: OpWaveform, kids: samples})
}

func (g *Graph) Output(index int, x NodeID) NodeID {
	return g.add(node{op: OpOutput, index: index, kids: []NodeID{x}})
}

// FixDelay delays x by the amount signal d.
func (g *Graph) FixDelay(x, d NodeID) NodeID {
	return g.add(node{op: OpFixDelay, kids: []NodeID{x, d}})
}

func (g *Graph) Prefix(x, y NodeID) NodeID {
	return g.add(node{op: OpPrefix, kids: []NodeID{x, y}})
}

// FFun calls the foreign function name; args is a single (list) node.
func (g *Graph) FFun(name string, args NodeID) NodeID {
	return g.add(node{op: OpFFun, text: name, kids: []NodeID{args}})
}

func (g *Graph) BinOp(op BinOp, x, y NodeID) NodeID {
	return g.add(node{op: OpBinOp, binop: op, kids: []NodeID{x, y}})
}

func (g *Graph) FConst(name string) NodeID { return g.add(node{op: OpFConst, text: name}) }
func (g *Graph) FVar(name string) NodeID   { return g.add(node{op: OpFVar, text: name}) }

// Table builds a table of the given size filled by init. The table id is
// kept for rendering only.
func (g *Graph) Table(id string, size, init NodeID) NodeID {
	return g.add(node{op: OpTable, text: id, kids: []NodeID{size, init}})
}

func (g *Graph) WRTbl(id string, table, windex, wsig NodeID) NodeID {
	return g.add(node{op: OpWRTbl, text: id, kids: []NodeID{table, windex, wsig}})
}

func (g *Graph) RDTbl(table, rindex NodeID) NodeID {
	return g.add(node{op: OpRDTbl, kids: []NodeID{table, rindex}})
}

func (g *Graph) DocConstantTbl(x, y NodeID) NodeID {
	return g.add(node{op: OpDocConstantTbl, kids: []NodeID{x, y}})
}

func (g *Graph) DocWriteTbl(x, y, z, u NodeID) NodeID {
	return g.add(node{op: OpDocWriteTbl, kids: []NodeID{x, y, z, u}})
}

func (g *Graph) DocAccessTbl(x, y NodeID) NodeID {
	return g.add(node{op: OpDocAccessTbl, kids: []NodeID{x, y}})
}

func (g *Graph) Select2(sel, x, y NodeID) NodeID {
	return g.add(node{op: OpSelect2, kids: []NodeID{sel, x, y}})
}

func (g *Graph) Select3(sel, x, y, z NodeID) NodeID {
	return g.add(node{op: OpSelect3, kids: []NodeID{sel, x, y, z}})
}

func (g *Graph) Button(label string) NodeID   { return g.add(node{op: OpButton, text: label}) }
func (g *Graph) Checkbox(label string) NodeID { return g.add(node{op: OpCheckbox, text: label}) }

// VSlider builds a vertical slider; arguments follow (init, min, max, step).
func (g *Graph) VSlider(label string, init, lo, hi, step NodeID) NodeID {
	return g.add(node{op: OpVSlider, text: label, kids: []NodeID{init, lo, hi, step}})
}

func (g *Graph) HSlider(label string, init, lo, hi, step NodeID) NodeID {
	return g.add(node{op: OpHSlider, text: label, kids: []NodeID{init, lo, hi, step}})
}

func (g *Graph) NumEntry(label string, init, lo, hi, step NodeID) NodeID {
	return g.add(node{op: OpNumEntry, text: label, kids: []NodeID{init, lo, hi, step}})
}

// VBargraph builds a vertical bargraph; arguments follow (min, max, signal).
func (g *Graph) VBargraph(label string, lo, hi, x NodeID) NodeID {
	return g.add(node{op: OpVBargraph, text: label, kids: []NodeID{lo, hi, x}})
}

func (g *Graph) HBargraph(label string, lo, hi, x NodeID) NodeID {
	return g.add(node{op: OpHBargraph, text: label, kids: []NodeID{lo, hi, x}})
}

func (g *Graph) Attach(x, y NodeID) NodeID {
	return g.add(node{op: OpAttach, kids: []NodeID{x, y}})
}

// Spec describes a node generically. Loaders use it with Add instead of the
// typed constructors.
type Spec struct {
	Op    Op
	Kids  []NodeID
	Int   int64
	Real  float64
	Index int
	Text  string
	BinOp BinOp
	// Prim is required for OpApply and optional elsewhere (see Annotate).
	Prim *Primitive
}

// Add validates s and appends the node it describes.
func (g *Graph) Add(s Spec) (NodeID, error) {
	if s.Op >= numOps {
		return NoNodeID, fmt.Errorf("unknown operator %d", uint8(s.Op))
	}
	want := s.Op.Arity()
	if s.Op == OpApply {
		if s.Prim == nil {
			return NoNodeID, fmt.Errorf("apply requires a primitive")
		}
		want = s.Prim.Arity
	}
	if want != variadic && len(s.Kids) != want {
		return NoNodeID, fmt.Errorf("%s expects %d arguments, got %d", s.Op, want, len(s.Kids))
	}
	if s.Op == OpBinOp && !s.BinOp.Valid() {
		return NoNodeID, fmt.Errorf("invalid binary operator code %d", uint8(s.BinOp))
	}
	for i, k := range s.Kids {
		if g.get(k) == nil {
			return NoNodeID, fmt.Errorf("%s argument %d refers to unknown node %d", s.Op, i, k)
		}
	}
	n := node{
		op:    s.Op,
		kids:  append([]NodeID(nil), s.Kids...),
		ival:  s.Int,
		rval:  s.Real,
		index: s.Index,
		text:  s.Text,
		binop: s.BinOp,
		prim:  s.Prim,
	}
	if s.Op == OpApply && n.text == "" {
		n.text = s.Prim.Name
	}
	return NodeID(g.nodes.Allocate(n)), nil
}
