package translate

import (
	"fmt"
	"strings"

	"wagner/internal/diag"
)

// HitPolicy selects what a cache hit returns.
type HitPolicy uint8

const (
	// HitWrap returns a fresh Reference to the cached node on every hit, so
	// every use site of a shared signal renders as P[id].
	HitWrap HitPolicy = iota
	// HitRaw returns the cached node itself. Shared signals then print their
	// bound expression at second and later use sites.
	HitRaw
)

func (p HitPolicy) String() string {
	switch p {
	case HitWrap:
		return "wrap"
	case HitRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// ParseHitPolicy accepts "wrap" and "raw"; empty means HitWrap.
func ParseHitPolicy(s string) (HitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrap":
		return HitWrap, nil
	case "raw":
		return HitRaw, nil
	}
	return HitWrap, fmt.Errorf("invalid hit policy %q (expected: wrap|raw)", s)
}

// Options configures one translation run.
type Options struct {
	Hits HitPolicy
	// Inline runs the uninline pass after translation.
	Inline bool
	// Reporter receives translation warnings; nil drops them.
	Reporter diag.Reporter
}
