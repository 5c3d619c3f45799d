package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wagner/internal/diagfmt"
	"wagner/internal/driver"
	"wagner/internal/observ"
	"wagner/internal/translate"
)

// cacheEntries bounds the in-memory result cache of one invocation.
const cacheEntries = 256

type translateSettings struct {
	inline bool
	hits   translate.HitPolicy
	env    bool
	stats  bool
	jobs   int
	cache  bool
	ui     uiMode
	format string
	notes  bool
}

func newTranslateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [flags] <file.yaml|directory>...",
		Short: "Translate signal graph files into Wagner IR",
		Long: `Translate one or more signal graph files (or every *.yaml/*.yml file in the given
directories) and print the resulting Wagner IR programs`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTranslate,
	}
	f := cmd.Flags()
	f.Bool("inline", false, "inline references used only once")
	f.String("hits", "wrap", "what a memo hit yields (wrap|raw)")
	f.Bool("env", true, "print the initial env before the program")
	f.Bool("stats", false, "report reachability and visit statistics")
	f.Int("jobs", 0, "max parallel workers (0=auto)")
	f.Bool("no-cache", false, "disable the result cache")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.String("format", "pretty", "output format (pretty|json)")
	f.Bool("with-notes", true, "include diagnostic notes in output")
	return cmd
}

// resolveTranslateSettings layers defaults, wagner.toml and explicit flags.
func resolveTranslateSettings(cmd *cobra.Command, manifest *projectManifest) (translateSettings, error) {
	s := translateSettings{env: true, cache: true, ui: uiModeAuto, format: "pretty", notes: true}

	if manifest != nil {
		cfg := manifest.Config
		if manifest.defined("translate", "inline") {
			s.inline = cfg.Translate.Inline
		}
		if manifest.defined("translate", "hits") {
			hits, err := translate.ParseHitPolicy(cfg.Translate.Hits)
			if err != nil {
				return s, err
			}
			s.hits = hits
		}
		if manifest.defined("output", "env") {
			s.env = cfg.Output.Env
		}
		if manifest.defined("output", "stats") {
			s.stats = cfg.Output.Stats
		}
		if manifest.defined("driver", "jobs") {
			s.jobs = cfg.Driver.Jobs
		}
		if manifest.defined("driver", "cache") {
			s.cache = cfg.Driver.Cache
		}
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("inline") {
		if s.inline, err = flags.GetBool("inline"); err != nil {
			return s, fmt.Errorf("failed to get inline flag: %w", err)
		}
	}
	if flags.Changed("hits") {
		raw, err := flags.GetString("hits")
		if err != nil {
			return s, fmt.Errorf("failed to get hits flag: %w", err)
		}
		if s.hits, err = translate.ParseHitPolicy(raw); err != nil {
			return s, err
		}
	}
	if flags.Changed("env") {
		if s.env, err = flags.GetBool("env"); err != nil {
			return s, fmt.Errorf("failed to get env flag: %w", err)
		}
	}
	if flags.Changed("stats") {
		if s.stats, err = flags.GetBool("stats"); err != nil {
			return s, fmt.Errorf("failed to get stats flag: %w", err)
		}
	}
	if flags.Changed("jobs") {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if s.jobs < 0 {
		return s, fmt.Errorf("--jobs must not be negative")
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return s, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if noCache {
		s.cache = false
	}
	uiRaw, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiRaw); err != nil {
		return s, err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch s.format = strings.ToLower(format); s.format {
	case "pretty", "json":
	default:
		return s, fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	if s.notes, err = flags.GetBool("with-notes"); err != nil {
		return s, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	return s, nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	root := cmd.Root().PersistentFlags()
	quiet, err := root.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := root.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	settings, err := resolveTranslateSettings(cmd, manifest)
	if err != nil {
		return err
	}

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no graph files found in %s", strings.Join(args, ", "))
	}

	opts := driver.Options{
		Hits:           settings.hits,
		Inline:         settings.inline,
		Env:            settings.env,
		Stats:          settings.stats,
		Timings:        showTimings,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           settings.jobs,
	}
	if settings.cache {
		opts.Cache = openCache(cmd.ErrOrStderr(), quiet)
	}

	ctx := cmd.Context()
	var results []*driver.FileResult
	if settings.format == "pretty" && !quiet && shouldUseTUI(settings.ui, len(paths)) {
		results, err = runTranslateWithUI(ctx, "translate", paths, opts)
	} else {
		results, err = driver.TranslateFiles(ctx, paths, opts)
	}
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	switch settings.format {
	case "json":
		if err := writeTranslateJSON(out, results, settings); err != nil {
			return err
		}
	default:
		if err := writeTranslatePretty(out, errOut, results, settings); err != nil {
			return err
		}
	}

	if showTimings && settings.format == "pretty" {
		printTimings(errOut, results)
	}
	summary := driver.Summarize(results)
	if !quiet && settings.format == "pretty" && len(results) > 1 {
		fmt.Fprintf(errOut, "translated %d files (%d cached, %d failed, %d warnings)\n",
			summary.Files, summary.Cached, summary.Failed, summary.Warnings)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Files)
	}
	return nil
}

// openCache returns a memory cache backed by the user cache directory. A
// disk cache that cannot be opened degrades to memory only.
func openCache(errOut io.Writer, quiet bool) *driver.Cache {
	disk, err := driver.OpenDiskCache("wagner")
	if err != nil {
		if !quiet {
			fmt.Fprintf(errOut, "warning: disk cache disabled: %v\n", err)
		}
		disk = nil
	}
	cache, err := driver.NewCache(cacheEntries, disk)
	if err != nil {
		if !quiet {
			fmt.Fprintf(errOut, "warning: cache disabled: %v\n", err)
		}
		return nil
	}
	return cache
}

func writeTranslatePretty(out, errOut io.Writer, results []*driver.FileResult, s translateSettings) error {
	prettyOpts := diagfmt.PrettyOpts{
		Color:     colorEnabled(),
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: s.notes,
	}
	for i, res := range results {
		if res.Err == nil {
			if len(results) > 1 {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", res.Path)
			}
			if _, err := io.WriteString(out, res.Output); err != nil {
				return err
			}
		}
		if err := diagfmt.Pretty(errOut, res.Path, res.Bag, prettyOpts); err != nil {
			return err
		}
	}
	return nil
}

type translateFileJSON struct {
	Path      string           `json:"path"`
	Digest    string           `json:"digest,omitempty"`
	Output    string           `json:"output,omitempty"`
	Cached    bool             `json:"cached,omitempty"`
	Error     string           `json:"error,omitempty"`
	Stats     *translate.Stats `json:"stats,omitempty"`
	Reachable int              `json:"reachable,omitempty"`
	Shared    int              `json:"shared,omitempty"`
	Timing    *observ.Report   `json:"timing,omitempty"`
}

type translateJSON struct {
	Files       []translateFileJSON       `json:"files"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func writeTranslateJSON(out io.Writer, results []*driver.FileResult, s translateSettings) error {
	payload := translateJSON{Files: make([]translateFileJSON, 0, len(results))}
	bags := make([]diagfmt.FileBag, 0, len(results))
	for _, res := range results {
		entry := translateFileJSON{Path: res.Path, Output: res.Output, Cached: res.Cached}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		} else {
			entry.Digest = res.Digest.String()
		}
		if s.stats && res.Err == nil {
			stats := res.Stats
			entry.Stats = &stats
			entry.Reachable = res.Reachable
			entry.Shared = res.Shared
		}
		if len(res.Timing.Phases) > 0 {
			timing := res.Timing
			entry.Timing = &timing
		}
		payload.Files = append(payload.Files, entry)
		bags = append(bags, diagfmt.FileBag{Path: res.Path, Bag: res.Bag})
	}
	payload.Diagnostics = diagfmt.BuildJSON(bags, diagfmt.JSONOpts{
		PathMode:     diagfmt.PathModeRelative,
		IncludeNotes: s.notes,
	})
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
