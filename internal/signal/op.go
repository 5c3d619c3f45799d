package signal

// Op is the raw operator a node was built with. Classification (see Shape)
// is derived from the operator plus the node's payload, so an Op alone does
// not decide how a node is translated.
type Op uint8

const (
	// OpSymbol is an opaque node with no known meaning.
	OpSymbol Op = iota
	OpList
	OpProj
	OpRec
	OpRef
	OpApply
	OpInt
	OpReal
	OpWaveform
	OpInput
	OpOutput
	OpDelay1
	OpFixDelay
	OpPrefix
	OpIota
	OpFFun
	OpBinOp
	OpFConst
	OpFVar
	OpTable
	OpWRTbl
	OpRDTbl
	OpGen
	OpDocConstantTbl
	OpDocWriteTbl
	OpDocAccessTbl
	OpSelect2
	OpSelect3
	OpIntCast
	OpFloatCast
	OpButton
	OpCheckbox
	OpVSlider
	OpHSlider
	OpNumEntry
	OpVBargraph
	OpHBargraph
	OpAttach
	numOps
)

// variadic marks operators that accept any number of children.
const variadic = -1

type opInfo struct {
	name  string
	arity int
}

var opTable = [numOps]opInfo{
	OpSymbol:         {"symbol", variadic},
	OpList:           {"list", variadic},
	OpProj:           {"proj", 1},
	OpRec:            {"rec", 1},
	OpRef:            {"ref", 0},
	OpApply:          {"apply", variadic},
	OpInt:            {"int", 0},
	OpReal:           {"real", 0},
	OpWaveform:       {"waveform", variadic},
	OpInput:          {"input", 0},
	OpOutput:         {"output", 1},
	OpDelay1:         {"delay1", 1},
	OpFixDelay:       {"fixdelay", 2},
	OpPrefix:         {"prefix", 2},
	OpIota:           {"iota", 1},
	OpFFun:           {"ffun", 1},
	OpBinOp:          {"binop", 2},
	OpFConst:         {"fconst", 0},
	OpFVar:           {"fvar", 0},
	OpTable:          {"table", 2},
	OpWRTbl:          {"wrtbl", 3},
	OpRDTbl:          {"rdtbl", 2},
	OpGen:            {"gen", 1},
	OpDocConstantTbl: {"docconstanttbl", 2},
	OpDocWriteTbl:    {"docwritetbl", 4},
	OpDocAccessTbl:   {"docaccesstbl", 2},
	OpSelect2:        {"select2", 3},
	OpSelect3:        {"select3", 4},
	OpIntCast:        {"intcast", 1},
	OpFloatCast:      {"floatcast", 1},
	OpButton:         {"button", 0},
	OpCheckbox:       {"checkbox", 0},
	OpVSlider:        {"vslider", 4},
	OpHSlider:        {"hslider", 4},
	OpNumEntry:       {"nentry", 4},
	OpVBargraph:      {"vbargraph", 3},
	OpHBargraph:      {"hbargraph", 3},
	OpAttach:         {"attach", 2},
}

// String returns the operator's keyword as used in graph files.
func (op Op) String() string {
	if op >= numOps {
		return "unknown"
	}
	return opTable[op].name
}

// Arity returns the fixed child count of op, or -1 when any count is allowed.
// OpApply takes its arity from the attached primitive.
func (op Op) Arity() int {
	if op >= numOps {
		return 0
	}
	return opTable[op].arity
}

// ParseOp resolves a graph-file keyword.
func ParseOp(s string) (Op, bool) {
	for i := range opTable {
		if opTable[i].name == s {
			return Op(i), true
		}
	}
	return OpSymbol, false
}
