// Package trace provides a tracing subsystem for the wagner translator.
//
// Tracing follows a batch run from the driver down to individual signal
// nodes and helps diagnose slow graphs or a translation that never returns.
//
// # Usage
//
//	wagner translate --trace=- --trace-level=detail graph.yaml
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on failure
//   - MultiTracer: fan-out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopePass events, LevelDetail adds
// ScopeFile (one span per input graph), LevelDebug adds ScopeNode (one point
// per Rec scope opened by the translator).
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "translate", 0)
//	defer span.End("")
package trace
