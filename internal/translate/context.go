package translate

import (
	"fmt"

	"wagner/internal/diag"
	"wagner/internal/scope"
	"wagner/internal/signal"
	"wagner/internal/trace"
	"wagner/internal/wir"
)

// Stats summarises one run.
type Stats struct {
	Visits      uint64 // calls to Translate, hits included
	Constructed int    // cache misses
	Hits        int
	Scopes      int // recursive scopes opened
	MaxDepth    int // deepest scope stack seen, the program table counts as 1
	Errors      int // Error leaves produced
	Legacy      int // named recursive binders
}

// Context is the mutable state of one translation: the IR arena, the open
// scopes and the occurrence counter. It is not safe for concurrent use; run
// independent graphs with independent contexts.
type Context struct {
	IR     *wir.Module
	Scopes scope.Stack
	Counts *scope.Counts
	// Env is the outermost table, opened by NewContext.
	Env *wir.Table

	hits     HitPolicy
	reporter diag.Reporter
	tracer   trace.Tracer
	nodes    bool // node-scope tracing enabled
	stats    Stats
}

// NewContext returns a context with the program table already open.
func NewContext(opts Options, tracer trace.Tracer) *Context {
	if tracer == nil {
		tracer = trace.Nop
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	c := &Context{
		IR:       wir.NewModule(),
		Counts:   scope.NewCounts(),
		Env:      wir.NewTable(),
		hits:     opts.Hits,
		reporter: reporter,
		tracer:   tracer,
		nodes:    tracer.Enabled() && tracer.Level().ShouldEmit(trace.ScopeNode),
	}
	c.Scopes.Push(c.Env)
	c.stats.MaxDepth = 1
	return c
}

// Stats returns the counters accumulated so far.
func (c *Context) Stats() Stats {
	s := c.stats
	s.Visits = c.Counts.Total()
	return s
}

func (c *Context) warn(code diag.Code, sig signal.NodeID, msg string) {
	diag.ReportWarning(c.reporter, code, sig, msg).Emit()
	if c.nodes {
		trace.Point(c.tracer, trace.ScopeNode, "diag", code.ID()+" "+msg, 0)
	}
}

func (c *Context) push(sig signal.NodeID) {
	c.Scopes.Push(wir.NewTable())
	c.stats.Scopes++
	c.stats.MaxDepth = max(c.stats.MaxDepth, c.Scopes.Depth())
	if c.nodes {
		trace.Point(c.tracer, trace.ScopeNode, "scope.push", fmt.Sprintf("sig %d depth %d", sig, c.Scopes.Depth()), 0)
	}
}

func (c *Context) pop(sig signal.NodeID) *wir.Table {
	t := c.Scopes.Pop()
	if c.nodes {
		trace.Point(c.tracer, trace.ScopeNode, "scope.pop", fmt.Sprintf("sig %d bindings %d", sig, t.Len()), 0)
	}
	return t
}
