package signal

import "fmt"

// BinOp is the operator code carried by a binary-operator node.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpLsh
	OpRsh
	OpGT
	OpLT
	OpGE
	OpLE
	OpEQ
	OpNE
	OpAnd
	OpOr
	OpXor
	numBinOps
)

var binOpSymbols = [numBinOps]string{
	"+", "-", "*", "/", "%",
	"<<", ">>",
	">", "<", ">=", "<=", "==", "!=",
	"&", "|", "^",
}

// String returns the operator's textual symbol.
func (op BinOp) String() string {
	if op >= numBinOps {
		return fmt.Sprintf("binop#%d", uint8(op))
	}
	return binOpSymbols[op]
}

// Valid reports whether op is a known operator code.
func (op BinOp) Valid() bool { return op < numBinOps }

// ParseBinOp maps a textual symbol back to its operator code.
func ParseBinOp(s string) (BinOp, error) {
	for i, sym := range binOpSymbols {
		if sym == s {
			return BinOp(i), nil
		}
	}
	return 0, fmt.Errorf("unknown binary operator %q", s)
}
