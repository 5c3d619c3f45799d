package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"wagner/internal/diag"
	"wagner/internal/pipeline"
	"wagner/internal/signal"
	"wagner/internal/trace"
)

// graphExts are the file extensions picked up when a directory is given.
var graphExts = []string{".yaml", ".yml"}

// ExpandPaths replaces every directory argument by the graph files below
// it, sorted. File arguments are kept as given; duplicates are dropped.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]struct{}, len(args))
	out := make([]string, 0, len(args))
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			add(arg)
			continue
		}
		var files []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isGraphFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		// Сортируем для детерминированного порядка
		sort.Strings(files)
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

func isGraphFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range graphExts {
		if ext == e {
			return true
		}
	}
	return false
}

// TranslateFiles translates paths concurrently, at most opts.Jobs at a time.
// Results come back in input order. A file that fails to load yields a
// result with Err set and an error diagnostic; only cancellation aborts the
// batch.
func TranslateFiles(ctx context.Context, paths []string, opts Options) ([]*FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "translate-batch", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	sink := opts.progress()
	for _, p := range paths {
		sink.OnEvent(pipeline.Event{File: p, Status: pipeline.StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := TranslateFile(gctx, path, opts)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				res = failedResult(path, err, opts)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(paths)))
	return results, nil
}

func failedResult(path string, err error, opts Options) *FileResult {
	code := diag.IOGraphFormat
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		code = diag.IOLoadFileError
	}
	bag := diag.NewBag(opts.maxDiagnostics())
	bag.Add(diag.New(diag.SevError, code, signal.NoNodeID, err.Error()))
	return &FileResult{Path: path, Bag: bag, Err: err}
}

// Summary aggregates a batch.
type Summary struct {
	Files    int
	Failed   int
	Cached   int
	Warnings int
}

// Summarize counts outcomes across results.
func Summarize(results []*FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Err != nil || r.Bag.HasErrors() {
			s.Failed++
		}
		if r.Cached {
			s.Cached++
		}
		for _, d := range r.Bag.Items() {
			if d.Severity == diag.SevWarning {
				s.Warnings++
			}
		}
	}
	return s
}
