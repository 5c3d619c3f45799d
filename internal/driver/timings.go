package driver

import (
	"encoding/json"
	"fmt"

	"wagner/internal/diag"
	"wagner/internal/observ"
	"wagner/internal/signal"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendInfo adds an info record even when the bag is full; timings and
// statistics must not be crowded out by warnings.
func appendInfo(bag *diag.Bag, entry diag.Diagnostic) {
	if bag == nil {
		return
	}
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}

func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	appendInfo(bag, diag.New(diag.SevInfo, diag.ObsTimings, signal.NoNodeID, msg).
		WithNote(signal.NoNodeID, string(data)))
}

func appendStatsDiagnostic(bag *diag.Bag, res *FileResult) {
	s := res.Stats
	msg := fmt.Sprintf("visits %d, constructed %d, hits %d, shared %d, reachable %d, scopes %d (max depth %d)",
		s.Visits, s.Constructed, s.Hits, res.Shared, res.Reachable, s.Scopes, s.MaxDepth)
	appendInfo(bag, diag.New(diag.SevInfo, diag.ObsStats, signal.NoNodeID, msg))
}
