package translate

import (
	"bytes"
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"wagner/internal/signal"
	"wagner/internal/testkit"
	"wagner/internal/wir"
)

// buildGraph turns a recipe into a DAG. Every step adds one node whose
// operands are picked among the nodes built so far, so sharing is common.
func buildGraph(recipe []uint32) (*signal.Graph, signal.NodeID) {
	g := signal.NewGraph()
	nodes := []signal.NodeID{g.Input(0), g.Input(1), g.Int(2)}
	pick := func(v uint32) signal.NodeID { return nodes[int(v)%len(nodes)] }

	for i, v := range recipe {
		a := pick(v >> 8)
		b := pick(v >> 16)
		var id signal.NodeID
		switch v % 8 {
		case 0:
			id = g.BinOp(signal.BinOp((v>>4)%16), a, b)
		case 1:
			id = g.Delay1(a)
		case 2:
			id = g.Rec(g.BinOp(signal.OpAdd, g.Ref(0), a))
		case 3:
			id = g.List(a, b)
		case 4:
			id = g.Select2(a, b, pick(v>>24))
		case 5:
			id = g.Proj(i%3, a)
		case 6:
			id = g.FixDelay(a, b)
		default:
			id = g.Symbol("opaque", a)
		}
		nodes = append(nodes, id)
	}
	return g, nodes[len(nodes)-1]
}

func dump(r *Result) string {
	var buf bytes.Buffer
	_ = r.Dump(&buf, true)
	return buf.String()
}

func TestTranslateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	recipes := gen.SliceOf(gen.UInt32())

	properties.Property("translation is deterministic", prop.ForAll(
		func(recipe []uint32) bool {
			g, root := buildGraph(recipe)
			a := Program(context.Background(), g, root, Options{})
			b := Program(context.Background(), g, root, Options{})
			return dump(a) == dump(b)
		},
		recipes,
	))

	properties.Property("every visit is a hit or a construction", prop.ForAll(
		func(recipe []uint32) bool {
			g, root := buildGraph(recipe)
			r := Program(context.Background(), g, root, Options{Hits: HitRaw})
			return uint64(r.Stats.Hits+r.Stats.Constructed) == r.Stats.Visits
		},
		recipes,
	))

	properties.Property("IR invariants hold", prop.ForAll(
		func(recipe []uint32) bool {
			g, root := buildGraph(recipe)
			r := Program(context.Background(), g, root, Options{})
			return testkit.CheckIRInvariants(r.IR, r.Root, r.Env) == nil
		},
		recipes,
	))

	properties.Property("inlining is idempotent and leaves only shared references", prop.ForAll(
		func(recipe []uint32) bool {
			g, root := buildGraph(recipe)
			r := Program(context.Background(), g, root, Options{Inline: true})
			once := wir.Render(r.IR, r.Root)
			again := wir.UninlineProgram(r.IR, r.Env, r.Root, r.Counts)
			if wir.Render(r.IR, again) != once {
				return false
			}
			return testkit.CheckInlined(r.IR, r.Root, r.Counts) == nil
		},
		recipes,
	))

	properties.TestingRun(t)
}
