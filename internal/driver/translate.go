package driver

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"wagner/internal/diag"
	"wagner/internal/observ"
	"wagner/internal/pipeline"
	"wagner/internal/signal"
	"wagner/internal/signal/sigfile"
	"wagner/internal/trace"
	"wagner/internal/translate"
)

// FileResult is the outcome of translating one graph file.
type FileResult struct {
	Path   string
	Digest Digest
	// Output is the canonical program text.
	Output    string
	Bag       *diag.Bag
	Stats     translate.Stats
	Reachable int // signals reachable from the root
	Shared    int // signals visited more than once
	Timing    observ.Report
	Cached    bool
	// Err is set by TranslateFiles when the file could not be loaded.
	Err error
}

// TranslateFile loads path, translates it and renders the program. Load
// failures are returned as errors; translation warnings land in the bag.
func TranslateFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+path, trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	sink := opts.progress()
	start := time.Now()
	fail := func(stage pipeline.Stage, err error) (*FileResult, error) {
		sink.OnEvent(pipeline.Event{File: path, Stage: stage, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(start)})
		span.WithExtra("error", err.Error())
		return nil, err
	}

	res := &FileResult{Path: path, Bag: diag.NewBag(opts.maxDiagnostics())}
	timer := observ.NewTimer()

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
	loadIdx := timer.Begin(observ.PhaseLoad)
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(pipeline.StageLoad, err)
	}
	res.Digest = cacheKey(data, opts)

	if opts.Cache != nil {
		payload, ok, err := opts.Cache.Get(res.Digest)
		switch {
		case err != nil:
			diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, signal.NoNodeID,
				"cache read failed: "+err.Error()).Emit()
		case ok:
			timer.End(loadIdx, "cache hit")
			res.fromPayload(payload)
			res.finish(timer, opts)
			span.WithExtra("cached", "true")
			sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusCached, Elapsed: time.Since(start)})
			return res, nil
		}
	}

	loaded, err := sigfile.Parse(data)
	if err != nil {
		timer.End(loadIdx, "")
		return fail(pipeline.StageLoad, fmt.Errorf("%s: %w", path, err))
	}
	timer.End(loadIdx, strconv.Itoa(loaded.Graph.Len())+" nodes")

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageTranslate, Status: pipeline.StatusWorking})
	var prog *translate.Result
	timer.Measure(observ.PhaseTranslate, func() {
		prog = translate.Program(ctx, loaded.Graph, loaded.Root, translate.Options{
			Hits:     opts.Hits,
			Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}),
		})
	})

	if opts.Inline {
		sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageInline, Status: pipeline.StatusWorking})
		timer.Measure(observ.PhaseInline, prog.Inline)
	}

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageRender, Status: pipeline.StatusWorking})
	var out strings.Builder
	var renderErr error
	timer.Measure(observ.PhaseRender, func() { renderErr = prog.Dump(&out, opts.Env) })
	if renderErr != nil {
		return fail(pipeline.StageRender, renderErr)
	}

	res.Output = out.String()
	res.Stats = prog.Stats
	res.Reachable = len(prog.Reachable())
	res.Shared = len(prog.Counts.Shared())
	res.Bag.Sort()

	if opts.Cache != nil {
		if err := opts.Cache.Put(res.Digest, res.payload()); err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, signal.NoNodeID,
				"cache write failed: "+err.Error()).Emit()
		}
	}

	res.finish(timer, opts)
	span.WithExtra("ir_nodes", strconv.Itoa(prog.IR.Len()))
	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageRender, Status: pipeline.StatusDone, Elapsed: time.Since(start)})
	return res, nil
}

func (r *FileResult) finish(timer *observ.Timer, opts Options) {
	r.Timing = timer.Report()
	if opts.Stats {
		appendStatsDiagnostic(r.Bag, r)
	}
	if opts.Timings {
		appendTimingDiagnostic(r.Bag, timingPayload{Path: r.Path, TotalMS: r.Timing.TotalMS, Phases: r.Timing.Phases})
	}
}

func (r *FileResult) payload() *DiskPayload {
	return &DiskPayload{
		Output:      r.Output,
		Diagnostics: diagsToDisk(r.Bag.Items()),
		Stats:       r.Stats,
		Reachable:   r.Reachable,
		Shared:      r.Shared,
	}
}

func (r *FileResult) fromPayload(p *DiskPayload) {
	r.Output = p.Output
	r.Stats = p.Stats
	r.Reachable = p.Reachable
	r.Shared = p.Shared
	r.Cached = true
	diagsFromDisk(p.Diagnostics, r.Bag)
}
