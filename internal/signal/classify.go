package signal

// Match is the result of classifying one node: the shape plus the sub-node
// handles and embedded literals the translator needs.
type Match struct {
	Shape Shape
	// Kids holds the children in operand order. For ShapeXtended these are
	// the primitive's branches; for ShapeList the elements.
	Kids  []NodeID
	Int   int64
	Real  float64
	Index int
	// Label carries the UI label, function or constant name, table id, or
	// the legacy recursion variable, depending on Shape.
	Label string
	Op    BinOp
	Prim  *Primitive
}

// Branch returns the j-th branch of an extended-primitive application, or
// NoNodeID when j is out of range.
func (m Match) Branch(j int) NodeID {
	if j < 0 || j >= len(m.Kids) {
		return NoNodeID
	}
	return m.Kids[j]
}

// Arity returns the primitive arity for ShapeXtended and the child count
// otherwise.
func (m Match) Arity() int {
	if m.Shape == ShapeXtended && m.Prim != nil {
		return m.Prim.Arity
	}
	return len(m.Kids)
}

// Classify returns the shape of id.
//
// Shapes are tested in a fixed order and the first match wins:
//
//  1. list with one element, then list with more than one element
//  2. projection
//  3. named recursive binder, then de Bruijn binder
//  4. back-reference
//  5. extended primitive: any node carrying primitive user data
//  6. the node's own operator (constants, variables, delays, tables, UI ...)
//
// Step 5 means an annotated binary operator classifies as ShapeXtended, while
// an annotated list still classifies as a list. Invalid handles and empty
// lists are ShapeUnknown.
func (g *Graph) Classify(id NodeID) Match {
	n := g.get(id)
	if n == nil {
		return Match{Shape: ShapeUnknown}
	}
	m := Match{
		Kids:  n.kids,
		Int:   n.ival,
		Real:  n.rval,
		Index: n.index,
		Label: n.text,
		Op:    n.binop,
		Prim:  n.prim,
	}
	switch {
	case n.op == OpList && len(n.kids) == 1:
		m.Shape = ShapeSingleton
	case n.op == OpList && len(n.kids) > 1:
		m.Shape = ShapeList
	case n.op == OpProj:
		m.Shape = ShapeProj
	case n.op == OpRec && n.text != "":
		m.Shape = ShapeRecNamed
	case n.op == OpRec:
		m.Shape = ShapeRec
	case n.op == OpRef:
		m.Shape = ShapeRef
	case n.prim != nil:
		m.Shape = ShapeXtended
		m.Label = n.prim.Name
	default:
		m.Shape = shapeByOp[n.op]
	}
	return m
}
