package translate

import (
	"context"
	"io"
	"strconv"

	"wagner/internal/scope"
	"wagner/internal/signal"
	"wagner/internal/trace"
	"wagner/internal/wir"
)

// Result is a translated program.
type Result struct {
	IR   *wir.Module
	Root wir.NodeID
	// Env is the program table: every binding made outside a recursive scope.
	Env    *wir.Table
	Counts *scope.Counts
	Stats  Stats

	inlined bool
}

// Program translates the graph rooted at root. The program table is opened
// before and closed after the walk; with opts.Inline the uninline pass runs
// on the result.
func Program(ctx context.Context, g signal.Lookup, root signal.NodeID, opts Options) *Result {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	span := trace.Begin(tracer, trace.ScopePass, "translate", parent)
	tc := NewContext(opts, tracer)
	top := tc.Translate(g, root)
	env := tc.Scopes.Pop()
	stats := tc.Stats()
	span.WithExtra("ir_nodes", strconv.Itoa(tc.IR.Len())).
		WithExtra("hits", strconv.Itoa(stats.Hits)).
		End("")

	res := &Result{
		IR:     tc.IR,
		Root:   top,
		Env:    env,
		Counts: tc.Counts,
		Stats:  stats,
	}
	if opts.Inline {
		span := trace.Begin(tracer, trace.ScopePass, "inline", parent)
		res.Inline()
		span.End("")
	}
	return res
}

// Inline replaces every Reference to a signal visited exactly once by its
// target, in the program table and under the root. Calling it again does
// nothing.
func (r *Result) Inline() {
	if r == nil || r.inlined {
		return
	}
	r.Root = wir.UninlineProgram(r.IR, r.Env, r.Root, r.Counts)
	r.inlined = true
}

// Inlined reports whether Inline has run.
func (r *Result) Inlined() bool { return r != nil && r.inlined }

// Reachable returns the signal identities reachable from the root through
// Reference wrappers.
func (r *Result) Reachable() map[signal.NodeID]struct{} {
	visited := make(map[signal.NodeID]struct{})
	if r != nil {
		wir.Collect(r.IR, r.Root, visited)
	}
	return visited
}

// Dump writes the canonical program text. With env the program table is
// printed first under "Initial env is:".
func (r *Result) Dump(w io.Writer, env bool) error {
	p := wir.NewPrinter(w, r.IR)
	if env {
		return p.PrintProgram(r.Env, r.Root)
	}
	if err := p.PrintNode(r.Root); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// String renders the root expression alone.
func (r *Result) String() string {
	return wir.Render(r.IR, r.Root)
}
