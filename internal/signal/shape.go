package signal

// Shape is the closed classification of a signal node. Every node classifies
// into exactly one Shape; ShapeUnknown is the catch-all.
type Shape uint8

const (
	ShapeUnknown Shape = iota
	// ShapeSingleton is a list holding exactly one element; it is transparent.
	ShapeSingleton
	// ShapeList is a list with more than one element.
	ShapeList
	ShapeProj
	// ShapeRecNamed is the legacy recursive binder that names its variable.
	ShapeRecNamed
	// ShapeRec is the de Bruijn recursive binder.
	ShapeRec
	// ShapeRef is a de Bruijn back-reference to an enclosing ShapeRec.
	ShapeRef
	// ShapeXtended is an application of an extended primitive.
	ShapeXtended
	ShapeInt
	ShapeReal
	ShapeWaveform
	ShapeInput
	ShapeOutput
	ShapeDelay1
	ShapeFixDelay
	ShapePrefix
	ShapeIota
	ShapeFFun
	ShapeBinOp
	ShapeFConst
	ShapeFVar
	ShapeTable
	ShapeWRTbl
	ShapeRDTbl
	ShapeGen
	ShapeDocConstantTbl
	ShapeDocWriteTbl
	ShapeDocAccessTbl
	ShapeSelect2
	ShapeSelect3
	ShapeIntCast
	ShapeFloatCast
	ShapeButton
	ShapeCheckbox
	ShapeVSlider
	ShapeHSlider
	ShapeNumEntry
	ShapeVBargraph
	ShapeHBargraph
	ShapeAttach
	numShapes
)

var shapeNames = [numShapes]string{
	ShapeUnknown:        "unknown",
	ShapeSingleton:      "singleton",
	ShapeList:           "list",
	ShapeProj:           "proj",
	ShapeRecNamed:       "rec-named",
	ShapeRec:            "rec",
	ShapeRef:            "ref",
	ShapeXtended:        "xtended",
	ShapeInt:            "int",
	ShapeReal:           "real",
	ShapeWaveform:       "waveform",
	ShapeInput:          "input",
	ShapeOutput:         "output",
	ShapeDelay1:         "delay1",
	ShapeFixDelay:       "fixdelay",
	ShapePrefix:         "prefix",
	ShapeIota:           "iota",
	ShapeFFun:           "ffun",
	ShapeBinOp:          "binop",
	ShapeFConst:         "fconst",
	ShapeFVar:           "fvar",
	ShapeTable:          "table",
	ShapeWRTbl:          "wrtbl",
	ShapeRDTbl:          "rdtbl",
	ShapeGen:            "gen",
	ShapeDocConstantTbl: "doc-constant-tbl",
	ShapeDocWriteTbl:    "doc-write-tbl",
	ShapeDocAccessTbl:   "doc-access-tbl",
	ShapeSelect2:        "select2",
	ShapeSelect3:        "select3",
	ShapeIntCast:        "intcast",
	ShapeFloatCast:      "floatcast",
	ShapeButton:         "button",
	ShapeCheckbox:       "checkbox",
	ShapeVSlider:        "vslider",
	ShapeHSlider:        "hslider",
	ShapeNumEntry:       "nentry",
	ShapeVBargraph:      "vbargraph",
	ShapeHBargraph:      "hbargraph",
	ShapeAttach:         "attach",
}

// String returns a human-readable name for the shape.
func (s Shape) String() string {
	if s >= numShapes {
		return "unknown"
	}
	return shapeNames[s]
}

// IsLeaf reports whether nodes of this shape are translated without visiting
// any children.
func (s Shape) IsLeaf() bool {
	switch s {
	case ShapeRef, ShapeInt, ShapeReal, ShapeWaveform, ShapeInput,
		ShapeFConst, ShapeFVar, ShapeButton, ShapeCheckbox, ShapeUnknown:
		return true
	default:
		return false
	}
}

// shapeByOp maps operators whose classification is fixed once the
// structural cases (lists, projections, binders, references, primitives)
// have been ruled out.
var shapeByOp = [numOps]Shape{
	OpInt:            ShapeInt,
	OpReal:           ShapeReal,
	OpWaveform:       ShapeWaveform,
	OpInput:          ShapeInput,
	OpOutput:         ShapeOutput,
	OpDelay1:         ShapeDelay1,
	OpFixDelay:       ShapeFixDelay,
	OpPrefix:         ShapePrefix,
	OpIota:           ShapeIota,
	OpFFun:           ShapeFFun,
	OpBinOp:          ShapeBinOp,
	OpFConst:         ShapeFConst,
	OpFVar:           ShapeFVar,
	OpTable:          ShapeTable,
	OpWRTbl:          ShapeWRTbl,
	OpRDTbl:          ShapeRDTbl,
	OpGen:            ShapeGen,
	OpDocConstantTbl: ShapeDocConstantTbl,
	OpDocWriteTbl:    ShapeDocWriteTbl,
	OpDocAccessTbl:   ShapeDocAccessTbl,
	OpSelect2:        ShapeSelect2,
	OpSelect3:        ShapeSelect3,
	OpIntCast:        ShapeIntCast,
	OpFloatCast:      ShapeFloatCast,
	OpButton:         ShapeButton,
	OpCheckbox:       ShapeCheckbox,
	OpVSlider:        ShapeVSlider,
	OpHSlider:        ShapeHSlider,
	OpNumEntry:       ShapeNumEntry,
	OpVBargraph:      ShapeVBargraph,
	OpHBargraph:      ShapeHBargraph,
	OpAttach:         ShapeAttach,
}
