package translate

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"wagner/internal/diag"
	"wagner/internal/signal"
	"wagner/internal/testkit"
	"wagner/internal/wir"
)

func run(t *testing.T, g *signal.Graph, root signal.NodeID, opts Options) *Result {
	t.Helper()
	res := Program(context.Background(), g, root, opts)
	if err := testkit.CheckIRInvariants(res.IR, res.Root, res.Env); err != nil {
		t.Fatalf("IR invariants: %v", err)
	}
	return res
}

func TestBinaryOpOfInputs(t *testing.T) {
	g := signal.NewGraph()
	in0 := g.Input(0)
	in1 := g.Input(1)
	add := g.BinOp(signal.OpAdd, in0, in1)

	res := run(t, g, add, Options{})
	if got, want := res.String(), "P[3]"; got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
	wantEnv := "let [1] = IN_0 in\n" +
		"let [2] = IN_1 in\n" +
		"let [3] = (P[1] + P[2]) in\n"
	if got := wir.RenderTable(res.IR, res.Env); got != wantEnv {
		t.Fatalf("env =\n%s\nwant\n%s", got, wantEnv)
	}

	res.Inline()
	if got, want := res.String(), "(IN_0 + IN_1)"; got != want {
		t.Fatalf("inlined root = %q, want %q", got, want)
	}
}

func TestOutputOfDelay(t *testing.T) {
	g := signal.NewGraph()
	out := g.Output(0, g.Delay1(g.Input(0)))

	res := run(t, g, out, Options{Inline: true})
	if got, want := res.String(), "OUT0mem(IN_0)"; got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
}

func TestFeedbackOverBoundRef(t *testing.T) {
	g := signal.NewGraph()
	ref := g.Ref(0)
	in0 := g.Input(0)
	rec := g.Rec(g.BinOp(signal.OpAdd, ref, in0))

	res := run(t, g, rec, Options{Inline: true})
	want := "Feed = \n" +
		"let [1] = REF[0] in\n" +
		"let [2] = IN_0 in\n" +
		"let [3] = (REF[0] + IN_0) in\n" +
		"\n" +
		"(REF[0] + IN_0)\n"
	if got := res.String(); got != want {
		t.Fatalf("root =\n%q\nwant\n%q", got, want)
	}
	if res.Stats.Scopes != 1 || res.Stats.MaxDepth != 2 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	if res.Env.Len() != 1 {
		t.Fatalf("recursive body leaked into the program table: %d bindings", res.Env.Len())
	}
}

func TestSharingCount(t *testing.T) {
	g := signal.NewGraph()
	x := g.Input(0)
	root := g.List(g.Delay1(x), g.IntCast(x), g.FloatCast(x))

	res := run(t, g, root, Options{})
	if got := res.Counts.Count(x); got != 3 {
		t.Fatalf("Counts[x] = %d, want 3", got)
	}
	if res.Stats.Constructed != 5 || res.Stats.Hits != 2 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	if res.Stats.Visits != 7 {
		t.Fatalf("visits = %d, want 7", res.Stats.Visits)
	}
	if shared := res.Counts.Shared(); len(shared) != 1 || shared[0] != x {
		t.Fatalf("shared = %v", shared)
	}
}

func TestMemoHitDoesNotRebuild(t *testing.T) {
	g := signal.NewGraph()
	d := g.Delay1(g.Input(0))
	root := g.BinOp(signal.OpMul, d, d)

	wrap := run(t, g, root, Options{Hits: HitWrap})
	if got, want := wir.RenderTable(wrap.IR, wrap.Env), "let [1] = IN_0 in\nlet [2] = mem(P[1]) in\nlet [3] = (P[2] * P[2]) in\n"; got != want {
		t.Fatalf("wrap env = %q, want %q", got, want)
	}
	if wrap.Stats.Constructed != 3 || wrap.Stats.Hits != 1 {
		t.Fatalf("wrap stats = %+v", wrap.Stats)
	}

	raw := run(t, g, root, Options{Hits: HitRaw})
	if got, want := wir.RenderTable(raw.IR, raw.Env), "let [1] = IN_0 in\nlet [2] = mem(P[1]) in\nlet [3] = (P[2] * mem(P[1])) in\n"; got != want {
		t.Fatalf("raw env = %q, want %q", got, want)
	}
	if raw.IR.Len() >= wrap.IR.Len() {
		t.Fatalf("raw hits should allocate fewer nodes: raw=%d wrap=%d", raw.IR.Len(), wrap.IR.Len())
	}
}

func TestScopeConfinement(t *testing.T) {
	g := signal.NewGraph()
	x := g.Input(0)
	body := g.BinOp(signal.OpAdd, g.Ref(0), x)
	rec := g.Rec(body)
	root := g.List(rec, x)

	res := run(t, g, root, Options{})
	if res.Stats.Constructed != 6 || res.Stats.Hits != 0 {
		t.Fatalf("x must be rebuilt after its scope closed: %+v", res.Stats)
	}
	if _, ok := res.Env.Lookup(x); !ok {
		t.Fatalf("x should be bound in the program table")
	}
	if _, ok := res.Env.Lookup(body); ok {
		t.Fatalf("recursive body bound in the program table")
	}
	fbID, _ := res.Env.Lookup(rec)
	fb := res.IR.Node(fbID).Data.(*wir.FeedbackData)
	if _, ok := fb.Table.Lookup(x); !ok {
		t.Fatalf("x should be bound in the recursive scope")
	}
}

func TestOuterBindingVisibleInsideScope(t *testing.T) {
	g := signal.NewGraph()
	x := g.Input(0)
	rec := g.Rec(g.BinOp(signal.OpAdd, g.Ref(0), x))
	root := g.List(x, rec)

	res := run(t, g, root, Options{})
	fbID, _ := res.Env.Lookup(rec)
	fb := res.IR.Node(fbID).Data.(*wir.FeedbackData)
	if _, ok := fb.Table.Lookup(x); ok {
		t.Fatalf("x was already bound outside; the scope must reuse it")
	}
	if res.Stats.Hits != 1 {
		t.Fatalf("hits = %d, want 1", res.Stats.Hits)
	}
}

func TestRenderings(t *testing.T) {
	sin := &signal.Primitive{Name: "sin", Arity: 1}
	tests := []struct {
		name  string
		build func(g *signal.Graph) signal.NodeID
		want  string
	}{
		{"tuple", func(g *signal.Graph) signal.NodeID { return g.List(g.Input(0), g.Input(1)) }, "(IN_0,IN_1,)"},
		{"singleton", func(g *signal.Graph) signal.NodeID { return g.List(g.Input(3)) }, "IN_3"},
		{"gen", func(g *signal.Graph) signal.NodeID { return g.Gen(g.Int(4)) }, "4"},
		{"proj", func(g *signal.Graph) signal.NodeID { return g.Proj(1, g.Input(0)) }, "(IN_0).1"},
		{"fixdelay", func(g *signal.Graph) signal.NodeID { return g.FixDelay(g.Input(0), g.Int(3)) }, "IN_0@3"},
		{"real", func(g *signal.Graph) signal.NodeID { return g.Real(0.25) }, "0.25"},
		{"waveform", func(g *signal.Graph) signal.NodeID { return g.Waveform(g.Int(1), g.Int(2)) }, "waveform{...}"},
		{"fconst", func(g *signal.Graph) signal.NodeID { return g.FConst("fSamplingFreq") }, "fSamplingFreq"},
		{"fvar", func(g *signal.Graph) signal.NodeID { return g.FVar("count") }, "count"},
		{"ffun", func(g *signal.Graph) signal.NodeID { return g.FFun("sinf", g.List(g.Input(0))) }, "sinf(IN_0)"},
		{"xtended", func(g *signal.Graph) signal.NodeID { return g.Apply(sin, g.Input(0)) }, "sin(IN_0)"},
		{"prefix", func(g *signal.Graph) signal.NodeID { return g.Prefix(g.Int(0), g.Input(0)) }, "prefix(0,IN_0)"},
		{"iota", func(g *signal.Graph) signal.NodeID { return g.Iota(g.Int(8)) }, "iota(8)"},
		{"table", func(g *signal.Graph) signal.NodeID { return g.Table("t0", g.Int(8), g.Real(0.5)) }, "table(8,0.5)"},
		{"wrtbl", func(g *signal.Graph) signal.NodeID {
			return g.WRTbl("t0", g.Input(0), g.Input(1), g.Input(2))
		}, "write(IN_0,IN_1,IN_2)"},
		{"rdtbl", func(g *signal.Graph) signal.NodeID { return g.RDTbl(g.Input(0), g.Input(1)) }, "read(IN_0,IN_1)"},
		{"doc constant", func(g *signal.Graph) signal.NodeID { return g.DocConstantTbl(g.Int(1), g.Int(2)) }, "DocConstantTbl(1,2)"},
		{"doc write", func(g *signal.Graph) signal.NodeID {
			return g.DocWriteTbl(g.Int(1), g.Int(2), g.Int(3), g.Int(4))
		}, "DocwriteTbl(1,2,3,4)"},
		{"doc access", func(g *signal.Graph) signal.NodeID { return g.DocAccessTbl(g.Int(1), g.Int(2)) }, "DocaccessTbl(1,2)"},
		{"select2", func(g *signal.Graph) signal.NodeID { return g.Select2(g.Input(0), g.Input(1), g.Input(2)) }, "select2(IN_0,IN_1,IN_2)"},
		{"select3", func(g *signal.Graph) signal.NodeID {
			return g.Select3(g.Input(0), g.Input(1), g.Input(2), g.Input(3))
		}, "select3(IN_0,IN_1,IN_2,IN_3)"},
		{"int", func(g *signal.Graph) signal.NodeID { return g.IntCast(g.Input(0)) }, "int(IN_0)"},
		{"float", func(g *signal.Graph) signal.NodeID { return g.FloatCast(g.Input(0)) }, "float(IN_0)"},
		{"attach", func(g *signal.Graph) signal.NodeID { return g.Attach(g.Input(0), g.Input(1)) }, "attach(IN_0,IN_1)"},
		{"button", func(g *signal.Graph) signal.NodeID { return g.Button("gate") }, "button"},
		{"checkbox", func(g *signal.Graph) signal.NodeID { return g.Checkbox("bypass") }, "checkbox"},
		{"vslider", func(g *signal.Graph) signal.NodeID {
			return g.VSlider("gain", g.Real(0.5), g.Real(0), g.Real(1), g.Real(0.01))
		}, "vslider"},
		{"hslider", func(g *signal.Graph) signal.NodeID {
			return g.HSlider("pan", g.Real(0.5), g.Real(0), g.Real(1), g.Real(0.01))
		}, "hslider"},
		{"nentry", func(g *signal.Graph) signal.NodeID {
			return g.NumEntry("freq", g.Int(440), g.Int(20), g.Int(20000), g.Int(1))
		}, "nentry"},
		{"vbargraph", func(g *signal.Graph) signal.NodeID {
			return g.VBargraph("level", g.Int(0), g.Int(1), g.Input(0))
		}, "vbargraph"},
		{"hbargraph", func(g *signal.Graph) signal.NodeID {
			return g.HBargraph("level", g.Int(0), g.Int(1), g.Input(0))
		}, "hbargraph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := signal.NewGraph()
			root := tt.build(g)
			bag := diag.NewBag(8)
			res := run(t, g, root, Options{Inline: true, Reporter: diag.BagReporter{Bag: bag}})
			if got := res.String(); got != tt.want {
				t.Fatalf("render = %q, want %q", got, tt.want)
			}
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Lines())
			}
		})
	}
}

func TestUIControlKeepsLabelAndOperands(t *testing.T) {
	g := signal.NewGraph()
	root := g.VSlider("gain", g.Real(0.5), g.Real(0), g.Real(1), g.Real(0.01))
	res := run(t, g, root, Options{Inline: true})
	ui, ok := res.IR.Node(res.Root).Data.(*wir.UIControlData)
	if !ok {
		t.Fatalf("root is %s, want UIControl", res.IR.Kind(res.Root))
	}
	if ui.Label != "gain" || len(ui.Args) != 4 {
		t.Fatalf("ui = %+v", ui)
	}
	if got := wir.Render(res.IR, ui.Args[3]); got != "0.01" {
		t.Fatalf("step = %q", got)
	}
}

func TestUnrecognizedBecomesErrorLeaf(t *testing.T) {
	g := signal.NewGraph()
	mystery := g.Symbol("vectorize", g.Input(0), g.Int(4))
	root := g.Delay1(mystery)

	bag := diag.NewBag(8)
	res := run(t, g, root, Options{Inline: true, Reporter: diag.BagReporter{Bag: bag}})
	if got, want := res.String(), "mem(ERROR[vectorize(input(0),4)])"; got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
	if res.Stats.Errors != 1 || bag.Count(diag.WagUnsupportedConstruct) != 1 {
		t.Fatalf("stats=%+v diags=%v", res.Stats, bag.Lines())
	}
	if bag.Items()[0].Node != mystery {
		t.Fatalf("diagnostic points at node %d, want %d", bag.Items()[0].Node, mystery)
	}
	if bag.HasErrors() {
		t.Fatalf("unsupported constructs are warnings")
	}
}

func TestLegacyRecursion(t *testing.T) {
	g := signal.NewGraph()
	rec := g.RecNamed("W", g.Input(0))

	bag := diag.NewBag(8)
	res := run(t, g, rec, Options{Inline: true, Reporter: diag.BagReporter{Bag: bag}})
	if got, want := res.String(), "Feed1 = W IN_0"; got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
	if res.Stats.Legacy != 1 || res.Stats.Scopes != 0 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	if bag.Count(diag.WagLegacyRecursion) != 1 {
		t.Fatalf("diags = %v", bag.Lines())
	}
}

func TestAnnotatedNodeMissingBranch(t *testing.T) {
	g := signal.NewGraph()
	x := g.Delay1(g.Input(0))
	g.Annotate(x, &signal.Primitive{Name: "pow", Arity: 2})

	bag := diag.NewBag(8)
	res := run(t, g, x, Options{Inline: true, Reporter: diag.BagReporter{Bag: bag}})
	got := res.String()
	if !strings.HasPrefix(got, "pow(IN_0,ERROR[missing operand 1") {
		t.Fatalf("render = %q", got)
	}
	if bag.Count(diag.WagMissingBranch) != 1 {
		t.Fatalf("diags = %v", bag.Lines())
	}
}

func TestDumpWithEnv(t *testing.T) {
	g := signal.NewGraph()
	root := g.BinOp(signal.OpSub, g.Input(0), g.Int(1))
	res := run(t, g, root, Options{})

	var buf bytes.Buffer
	if err := res.Dump(&buf, true); err != nil {
		t.Fatal(err)
	}
	want := "Initial env is:\n\n" +
		"let [1] = IN_0 in\n" +
		"let [2] = 1 in\n" +
		"let [3] = (P[1] - P[2]) in\n" +
		"\nProgram is:\n\n" +
		"P[3]\n"
	if buf.String() != want {
		t.Fatalf("dump =\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	if err := res.Dump(&buf, false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "P[3]\n" {
		t.Fatalf("dump without env = %q", buf.String())
	}
}

func TestReachable(t *testing.T) {
	g := signal.NewGraph()
	x := g.Input(0)
	root := g.BinOp(signal.OpAdd, x, g.Delay1(x))
	res := run(t, g, root, Options{})
	if got := len(res.Reachable()); got != 3 {
		t.Fatalf("reachable = %d, want 3", got)
	}
}

func TestInlineTwiceIsStable(t *testing.T) {
	g := signal.NewGraph()
	x := g.Input(0)
	root := g.BinOp(signal.OpAdd, g.Delay1(x), x)

	res := run(t, g, root, Options{Inline: true})
	first := res.String()
	res.Inline()
	if res.String() != first {
		t.Fatalf("second Inline changed output: %q -> %q", first, res.String())
	}
	if first != "(mem(P[1]) + P[1])" {
		t.Fatalf("render = %q", first)
	}
	if err := testkit.CheckInlined(res.IR, res.Root, res.Counts); err != nil {
		t.Fatal(err)
	}
}

func TestParseHitPolicy(t *testing.T) {
	for in, want := range map[string]HitPolicy{"": HitWrap, "wrap": HitWrap, "RAW": HitRaw} {
		got, err := ParseHitPolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParseHitPolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseHitPolicy("copy"); err == nil {
		t.Fatalf("expected error")
	}
}
