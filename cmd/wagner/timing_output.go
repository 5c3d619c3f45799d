package main

import (
	"fmt"
	"io"

	"wagner/internal/driver"
	"wagner/internal/observ"
)

// printTimings prints per-file phase totals and, for batches, their sum.
func printTimings(out io.Writer, results []*driver.FileResult) {
	if out == nil {
		return
	}
	reports := make([]observ.Report, 0, len(results))
	for _, res := range results {
		if res == nil || len(res.Timing.Phases) == 0 {
			continue
		}
		reports = append(reports, res.Timing)
		state := ""
		if res.Cached {
			state = " (cached)"
		}
		fmt.Fprintf(out, "%s%s %.1f ms\n", res.Path, state, res.Timing.TotalMS)
	}
	if len(reports) == 0 {
		return
	}
	fmt.Fprint(out, observ.Merge(reports...).Summary())
}
