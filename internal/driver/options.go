package driver

import (
	"runtime"

	"wagner/internal/pipeline"
	"wagner/internal/translate"
)

// DefaultMaxDiagnostics caps the diagnostics kept per file.
const DefaultMaxDiagnostics = 100

// Options controls TranslateFile and TranslateFiles.
type Options struct {
	Hits   translate.HitPolicy
	Inline bool
	// Env prints the program table before the root expression.
	Env bool
	// Stats and Timings append info diagnostics to each file's bag.
	Stats   bool
	Timings bool

	MaxDiagnostics int
	Jobs           int
	// Cache may be nil to disable caching.
	Cache    *Cache
	Progress pipeline.ProgressSink
}

func (o Options) progress() pipeline.ProgressSink {
	if o.Progress == nil {
		return pipeline.NopSink{}
	}
	return o.Progress
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}
