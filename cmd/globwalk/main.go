// Command globwalk is a thin CLI wrapper around the globwalk library: it
// parses flags and an optional config file into an internal/cli.Config,
// then hands off to internal/cli.Run. It contains no pattern-matching or
// traversal logic of its own — per spec.md, that logic belongs to the
// core library, not its public-API wrapper.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dl/globwalk/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := &cli.Config{}
	var colorFlag string
	var noCaseFlag bool

	root := &cobra.Command{
		Use:   "globwalk [flags] <pattern> [pattern...]",
		Short: "Expand shell-style glob patterns against the filesystem",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Patterns = args
			if cmd.Flags().Changed("nocase") {
				cfg.NoCaseSet = true
				cfg.NoCase = noCaseFlag
			}
			switch colorFlag {
			case "always":
				cfg.Color = cli.ColorAlways
			case "never":
				cfg.Color = cli.ColorNever
			default:
				cfg.Color = cli.ColorAuto
			}
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.Cwd, "cwd", "", "directory patterns are resolved relative to")
	flags.BoolVar(&cfg.Dot, "dot", false, "match dotfiles/dot-directories")
	flags.BoolVar(&cfg.Mark, "mark", false, "append '/' to directory matches")
	flags.BoolVar(&cfg.NoBrace, "nobrace", false, "disable {a,b} brace expansion")
	flags.BoolVar(&cfg.NoExt, "noext", false, "disable extglob (!(...), +(...), ...) support")
	flags.BoolVar(&cfg.NoGlobstar, "noglobstar", false, "treat '**' like '*' (matches within a single path segment)")
	flags.BoolVar(&noCaseFlag, "nocase", false, "case-insensitive matching (default: platform-dependent)")
	flags.BoolVar(&cfg.MatchBase, "matchbase", false, "a basename pattern with no slash matches at any depth")
	flags.BoolVar(&cfg.NoDir, "nodir", false, "exclude directories from results")
	flags.BoolVar(&cfg.Follow, "follow", false, "follow symlinked directories during traversal")
	flags.BoolVar(&cfg.Realpath, "realpath", false, "resolve results to their canonical path")
	flags.BoolVar(&cfg.Absolute, "absolute", false, "always return absolute paths")
	flags.BoolVar(&cfg.WithFileTypes, "with-file-types", false, "print entry type metadata alongside each path")
	flags.BoolVar(&cfg.WindowsPathsNoEscape, "windows-paths-no-escape", false, "treat '\\\\' as a path separator rather than an escape character")
	flags.StringArrayVar(&cfg.Ignore, "ignore", nil, "gitignore-dialect pattern to exclude (repeatable)")
	flags.IntVar(&cfg.Concurrency, "concurrency", 0, "bound on in-flight directory reads (0 = library default)")
	flags.BoolVar(&cfg.JSONOutput, "json", false, "print one JSON object per result")
	flags.StringVar(&colorFlag, "color", "auto", "color mode: auto, always, never")
	flags.BoolVar(&cfg.Watch, "watch", false, "keep running, re-walking when the tree changes")

	root.SetArgs(append(cli.LoadConfigArgs(), os.Args[1:]...))
	if err := root.Execute(); err != nil {
		return 2
	}
	return cli.Run(*cfg)
}
