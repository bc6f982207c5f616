// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing, usage and version for nautilus-compare.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdMenu
	CmdActivate
	CmdRemember
	CmdCompare
	CmdSession
	CmdConfig
	CmdEngines
	CmdPrefs
	CmdHistory
	CmdServe
	CmdVersion
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	NoColor bool
	Format  string // text, json, yaml or toml

	// Name is the command word as typed.
	Name string

	// Raw args (remaining after global flag parsing)
	Raw []string
}

// OutputFormat returns the effective output format.
func (a Args) OutputFormat() string {
	if a.JSON {
		return FormatJSON
	}
	if a.Format == "" {
		return FormatText
	}
	return strings.ToLower(a.Format)
}

// LogLevel returns the log level selected by -v and -q.
func (a Args) LogLevel() string {
	switch {
	case a.Verbose:
		return "debug"
	case a.Quiet:
		return "error"
	}
	return ""
}

const usageText = `nautilus-compare - compare files with an external diff engine

Remember a file now and compare it with another one later, or compare
two, three or more selected files at once. The comparison itself is done
by an external program (meld, kdiff3, diffuse, ...).

Usage:
  nautilus-compare menu FILE...              List the actions offered for FILE...
  nautilus-compare activate ACTION FILE...   Run an action on FILE...
    --dry-run                                Print the engine command instead of running it
  nautilus-compare remember FILE             Remember FILE for a later comparison
  nautilus-compare compare FILE...           Run the first comparison offered
    --dry-run                                Print the engine command instead of running it
  nautilus-compare session [show|forget]     Show or clear the remembered file
  nautilus-compare config [show|path|set KEY VALUE|reset]
                                             Engine configuration
  nautilus-compare engines                   Known, installed and configured engines
  nautilus-compare prefs                     Edit engine preferences interactively
  nautilus-compare history [--limit N|clear] Recently launched comparisons
  nautilus-compare serve                     Answer JSON requests on stdin, one per line
  nautilus-compare version                   Show version
  nautilus-compare help                      Show this help

Actions:
  compare-later    Remember one file (alias: remember)
  compare-to       Compare one file with the remembered file
  compare          Compare the selected files with each other
  multi-compare    Compare the remembered file with the selected files

Config keys:
  two_way, three_way, multi_way    Engine per number of files ("" disables)

Global flags:
  -v, --verbose        Debug logging on stderr
  -q, --quiet          Only log errors
  --json               JSON output (same as --format json)
  --format FORMAT      Output format: text, json, yaml (config show also: toml)
  --no-color           Disable colors

Environment:
  NAUTILUS_COMPARE_CONFIG          User config file
  NAUTILUS_COMPARE_SYSTEM_CONFIG   System-wide config file
  NAUTILUS_COMPARE_STATE_DIR       Directory for session and history
  NAUTILUS_COMPARE_LOG_LEVEL       debug, info, warn or error
  NAUTILUS_COMPARE_LANG            Menu language (defaults to LANG)

Examples:
  nautilus-compare remember notes.txt
  nautilus-compare compare notes-v2.txt
  nautilus-compare menu a.txt b.txt --json
  nautilus-compare config set three_way kdiff3
`

// Parse parses the process arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	parsedArgs.Name = cmd
	parsedArgs.Raw = remaining[1:]

	switch cmd {
	case "menu", "items":
		return CmdMenu, parsedArgs
	case "activate", "run":
		return CmdActivate, parsedArgs
	case "remember", "compare-later":
		return CmdRemember, parsedArgs
	case "compare", "diff":
		return CmdCompare, parsedArgs
	case "session":
		return CmdSession, parsedArgs
	case "config":
		return CmdConfig, parsedArgs
	case "engines":
		return CmdEngines, parsedArgs
	case "prefs", "preferences":
		return CmdPrefs, parsedArgs
	case "history":
		return CmdHistory, parsedArgs
	case "serve":
		return CmdServe, parsedArgs
	case "version", "--version":
		return CmdVersion, parsedArgs
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs
	}
	return CmdUnknown, parsedArgs
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Everything after "--" is passed through untouched. A "--" ahead of the
// command name is dropped.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--":
			if len(remaining) == 0 {
				return args[i+1:], parsedArgs
			}
			return append(remaining, args[i:]...), parsedArgs
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-color":
			parsedArgs.NoColor = true
		case "--format":
			if i+1 < len(args) {
				i++
				parsedArgs.Format = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--format=") {
				parsedArgs.Format = strings.TrimPrefix(arg, "--format=")
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes the version line.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "nautilus-compare %s (commit %s, built %s, %s)\n", Version, GitCommit, BuildDate, runtime.Version())
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version,omitempty" yaml:"go_version,omitempty"`
}

// HandleVersion handles the "version" command.
func (a *App) HandleVersion(args Args) error {
	data := VersionData{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	return a.Output(args, "version", data, func(w io.Writer) {
		PrintVersion(w)
	})
}

// HandleHelp handles the "help" command.
func (a *App) HandleHelp(Args) error {
	PrintUsage(a.Stdout)
	return nil
}
