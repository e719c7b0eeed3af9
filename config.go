package globwalk

import (
	"fmt"
	"runtime"

	"github.com/dl/globwalk/internal/dircache"
	"github.com/dl/globwalk/internal/globtoken"
)

// defaultConcurrency mirrors the walker's own default, which applies when
// Config.Concurrency is zero or negative; nothing in this package reads
// it at run time.
const defaultConcurrency = 64

// Config is the public configuration for a Globber, covering every knob
// spec.md §6's configuration table names. It plays the role the
// teacher's cli.Config played for gogrep (internal/cli/config.go), but
// lives at the library boundary rather than the CLI boundary: the CLI
// (cmd/globwalk, internal/cli) is a thin wrapper that builds one of
// these from flags.
type Config struct {
	// Cwd is the directory patterns are resolved relative to. Accepts a
	// local path or a "file://" URL; empty means the process's current
	// directory.
	Cwd string

	Dot                  bool
	Mark                 bool
	NoBrace              bool
	NoExt                bool
	NoGlobstar           bool
	MatchBase            bool
	NoDir                bool
	Follow               bool
	Realpath             bool
	Absolute             bool
	WithFileTypes        bool
	WindowsPathsNoEscape bool

	// NoCase overrides the default case-sensitivity (platform default:
	// insensitive on Windows/Darwin, sensitive elsewhere). Leave nil to
	// take the platform default.
	NoCase *bool

	// Platform selects root-shape and separator rules. The zero value
	// (PlatformPOSIX) is also treated as "use the platform default
	// inferred from runtime.GOOS" — there is no separate way to force
	// POSIX rules while running on Windows or Darwin; see DESIGN.md.
	Platform globtoken.Platform

	// Ignore is a flat list of gitignore-dialect patterns applied to
	// every candidate match, regardless of Dot (see internal/ignore).
	Ignore []string

	// Concurrency bounds in-flight directory reads for the asynchronous
	// flavors. Zero or negative means defaultConcurrency.
	Concurrency int

	// DirCache lets a caller supply a pre-populated Cache (the "scurry"
	// option in spec.md's glossary) so repeated Globbers over the same
	// tree share cached listings. Its case-sensitivity must agree with
	// the effective NoCase setting.
	DirCache *dircache.Cache
}

// CaseSensitive reports the effective case-sensitivity this Config
// would use once defaulted, accounting for the platform default when
// NoCase is left nil. Exported so a caller that wants to pre-build its
// own DirCache (e.g. to share across Globbers, or to wire up an
// internal/watch.CacheWatcher) can match it exactly.
func (c Config) CaseSensitive() bool { return !c.effectiveNoCase() }

func (c Config) effectiveNoCase() bool {
	if c.NoCase != nil {
		return *c.NoCase
	}
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

func (c Config) effectivePlatform() globtoken.Platform {
	if c.Platform != globtoken.PlatformPOSIX {
		return c.Platform
	}
	switch runtime.GOOS {
	case "windows":
		return globtoken.PlatformWindows
	case "darwin":
		return globtoken.PlatformDarwin
	default:
		return globtoken.PlatformPOSIX
	}
}

// Validate reports the construction-time misconfigurations spec.md §7
// names: absolute combined with withFileTypes, matchBase combined with
// noglobstar (matchBase rewrites a base pattern to "**/pattern", which
// noglobstar makes inexpressible), and a supplied DirCache whose
// case-sensitivity disagrees with the effective nocase setting.
func (c Config) Validate() error {
	if c.Absolute && c.WithFileTypes {
		return fmt.Errorf("globwalk: absolute and withFileTypes are mutually exclusive")
	}
	if c.MatchBase && c.NoGlobstar {
		return fmt.Errorf("globwalk: matchBase requires globstar support, but noglobstar disables it")
	}
	if c.DirCache != nil && c.DirCache.CaseSensitive() == c.effectiveNoCase() {
		return fmt.Errorf("globwalk: supplied DirCache case-sensitivity disagrees with nocase")
	}
	return nil
}
