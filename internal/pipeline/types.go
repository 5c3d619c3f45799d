// Package pipeline carries progress events from the driver to whoever
// renders them (the terminal UI, tests).
package pipeline

import "time"

// Stage describes a phase of translating one file.
type Stage string

const (
	// StageLoad reads and builds the signal graph.
	StageLoad Stage = "load"
	// StageTranslate runs the translator.
	StageTranslate Stage = "translate"
	// StageInline runs the optional uninline pass.
	StageInline Stage = "inline"
	// StageRender writes the program text.
	StageRender Stage = "render"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusCached indicates the result came from the cache.
	StatusCached Status = "cached"
	// StatusDone indicates the file is done.
	StatusDone Status = "done"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Terminal reports whether no further events follow for the file.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusCached
}

// Event reports progress for a file (or for the whole batch when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; the driver emits from several workers.
type ProgressSink interface {
	OnEvent(Event)
}
