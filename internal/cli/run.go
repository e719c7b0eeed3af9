package cli

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dl/globwalk"
	"github.com/dl/globwalk/internal/dircache"
	"github.com/dl/globwalk/internal/display"
	"github.com/dl/globwalk/internal/watch"
)

// Run executes a glob walk with the given config and prints results to
// stdout. Returns an exit code: 0 = at least one match, 1 = no match,
// 2 = error — mirroring the teacher's Run contract in gogrep's
// internal/cli/run.go.
func Run(cfg Config) int {
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		return 2
	}

	gcfg := toGlobwalkConfig(cfg)

	var cache *dircache.Cache
	if cfg.Watch {
		cache = dircache.New(gcfg.CaseSensitive())
		gcfg.DirCache = cache
	}

	g, err := globwalk.New(gcfg)
	if err != nil {
		log.Error("configuration rejected", "err", err)
		return 2
	}

	formatter, useColor := buildFormatter(cfg)
	_ = useColor
	w := display.NewWriter()
	runID := uuid.New()

	ctx := context.Background()
	if cfg.Watch {
		return runWatch(ctx, g, cfg, cache, formatter, w, runID)
	}
	return runOnce(ctx, g, cfg, formatter, w, runID)
}

func toGlobwalkConfig(cfg Config) globwalk.Config {
	gcfg := globwalk.Config{
		Cwd:                  cfg.Cwd,
		Dot:                  cfg.Dot,
		Mark:                 cfg.Mark,
		NoBrace:              cfg.NoBrace,
		NoExt:                cfg.NoExt,
		NoGlobstar:           cfg.NoGlobstar,
		MatchBase:            cfg.MatchBase,
		NoDir:                cfg.NoDir,
		Follow:               cfg.Follow,
		Realpath:             cfg.Realpath,
		Absolute:             cfg.Absolute,
		WithFileTypes:        cfg.WithFileTypes,
		WindowsPathsNoEscape: cfg.WindowsPathsNoEscape,
		Ignore:               cfg.Ignore,
		Concurrency:          cfg.Concurrency,
	}
	if cfg.NoCaseSet {
		nc := cfg.NoCase
		gcfg.NoCase = &nc
	}
	return gcfg
}

func buildFormatter(cfg Config) (display.Formatter, bool) {
	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = display.StdoutIsTerminal(os.Stdout.Fd())
	}
	if cfg.JSONOutput {
		return display.NewJSONFormatter(), useColor
	}
	styles := display.NoStyles()
	if useColor {
		styles = display.NewStyles()
	}
	return display.NewTextFormatter(styles, useColor), useColor
}

func toDisplayEntry(r globwalk.Result, withFileTypes bool) display.Entry {
	if withFileTypes {
		return display.Entry{
			Path:          r.Entry.Path(),
			IsDir:         r.Entry.IsDir(),
			IsSymlink:     r.Entry.IsSymlink(),
			WithFileTypes: true,
		}
	}
	return display.Entry{Path: r.Path, IsDir: r.Entry.IsDir(), IsSymlink: r.Entry.IsSymlink()}
}

func printResults(results []globwalk.Result, cfg Config, formatter display.Formatter, w *display.Writer) bool {
	var buf []byte
	hasMatch := len(results) > 0
	for _, r := range results {
		buf = formatter.Format(buf[:0], toDisplayEntry(r, cfg.WithFileTypes))
		w.Write(buf)
	}
	return hasMatch
}

func runOnce(ctx context.Context, g *globwalk.Globber, cfg Config, formatter display.Formatter, w *display.Writer, runID uuid.UUID) int {
	results, err := g.Walk(ctx, cfg.Patterns...)
	if err != nil {
		log.Error("walk failed", "id", runID, "err", err)
		return 2
	}
	if printResults(results, cfg, formatter, w) {
		return 0
	}
	return 1
}

// runWatch re-runs the walk each time the watched cwd changes,
// adapted from the teacher's runWatch (internal/cli/run.go in gogrep),
// which re-searched new log-file content on modify; here a change
// invalidates the shared DirCache and triggers a fresh walk instead.
func runWatch(ctx context.Context, g *globwalk.Globber, cfg Config, cache *dircache.Cache, formatter display.Formatter, w *display.Writer, runID uuid.UUID) int {
	watcher, err := watch.New(cache)
	if err != nil {
		log.Error("failed to create watcher", "err", err)
		return 2
	}
	defer watcher.Close()

	// Resolve cwd the same way globwalk.New does, so the watcher watches
	// exactly the directory the walker itself treats as its root.
	cwd := strings.TrimPrefix(cfg.Cwd, "file://")
	if cwd == "" {
		cwd, _ = os.Getwd()
	}
	if err := watcher.Add(cwd); err != nil {
		log.Error("failed to watch", "path", cwd, "err", err)
		return 2
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go watcher.Run(runCtx)

	hasMatch := false
	rerun := func() {
		results, err := g.Walk(ctx, cfg.Patterns...)
		if err != nil {
			log.Error("walk failed", "id", runID, "err", err)
			return
		}
		if printResults(results, cfg, formatter, w) {
			hasMatch = true
		}
	}
	rerun()

	for range watcher.Changed() {
		log.Info("directory changed, re-walking", "id", runID)
		rerun()
	}

	if hasMatch {
		return 0
	}
	return 1
}
