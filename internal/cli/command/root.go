// Package command provides CLI command definitions for tab-bookmark.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/minad/tab-bookmark/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "tab-bookmark",
		Usage:   "Workspace snapshot bookmarks for tmux",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ToggleCommand(),
			SaveCommand(),
			OpenCommand(),
			DeleteCommand(),
			RenameCommand(),
			PushCommand(),
			PopCommand(),
			ListCommand(),
		},
		Before: setup,
		After:  teardown,
		// Bare invocation dispatches like "toggle".
		Action: toggleAction,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path",
			EnvVars: []string{"TAB_BOOKMARK_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:  "no-headers",
			Usage: "Omit table headers (for scripting)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose logging",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config    string
	Output    string // table, json, yaml
	NoHeaders bool
	Verbose   bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:    c.String("config"),
		Output:    c.String("output"),
		NoHeaders: c.Bool("no-headers"),
		Verbose:   c.Bool("verbose"),
	}
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
