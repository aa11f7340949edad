// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"
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
	CmdTUI Command = iota
	CmdAnalyze
	CmdAsk
	CmdChat
	CmdStatus
	CmdAdmin
	CmdConfig
	CmdMockBackend
	CmdVersion
	CmdHelp
)

// String returns the command name used in JSON envelopes.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAnalyze:
		return "analyze"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdStatus:
		return "status"
	case CmdAdmin:
		return "admin"
	case CmdConfig:
		return "config"
	case CmdMockBackend:
		return "mock-backend"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Global flags
	Backend    string
	Timeout    time.Duration
	TimeoutSet bool
	ConfigPath string
	JSON       bool
	Verbose    bool
	Quiet      bool
	NoColor    bool

	// Rest are the arguments after the command name.
	Rest []string
}

const usageText = `streamintel - StreamIntel360 content intelligence client

Evaluate show and movie concepts with the StreamIntel360 backend:
executive analysis of a title and a strategy copilot chat.

Usage:
  streamintel [global flags] [command] [args]

Commands:
  tui [analyze|chat]           Start the terminal UI (default)
  analyze --title T            Analyze a title concept
      -d, --description TEXT   Short synopsis (optional)
      -r, --regions LIST       Comma-separated target regions (optional)
  ask "message"                Send a single copilot message
  chat                         Line-mode copilot chat
  status, s                    Check backend health
  admin rebuild-index          Rebuild the backend catalog index
  config show                  Show the effective configuration
  config path                  Print the config file path
  config init [--force]        Write a default config file
  config get KEY               Print one value
  config set KEY VALUE         Change one value in the config file
  config keys                  List config keys
  mock-backend                 Run a local mock backend
      --addr HOST:PORT         Listen address (default from config)
      --latency DURATION       Artificial delay per answer
  version                      Show version information
  help                         Show this help

Global Flags:
  --backend URL       Backend base URL (env: STREAMINTEL_BACKEND_URL)
  --timeout DURATION  Per-request timeout, e.g. 30s (0 = none)
  --config PATH       Config file (default: ~/.streamintel/config.toml)
  --json              Print a JSON envelope instead of text
  -v, --verbose       Also write log lines to stderr
  -q, --quiet         Print answers only
  --no-color          Disable colors (also: NO_COLOR)

Examples:
  streamintel                                    Open the home page
  streamintel tui chat                           Open the copilot directly
  streamintel analyze --title "Time Loop Colony" --regions "US, UK"
  streamintel ask "Which audiences fit a slow-burn sci-fi drama?"
  streamintel --backend http://10.0.0.5:8000 status
  streamintel mock-backend --latency 800ms

Version: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// VersionInfo is the data of the version command.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func versionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	v := versionInfo()
	fmt.Fprintf(w, "streamintel version %s\n", v.Version)
	fmt.Fprintf(w, "  Git commit: %s\n", v.GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", v.BuildDate)
	fmt.Fprintf(w, "  Go:         %s (%s)\n", v.GoVersion, v.Platform)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse splits argv into global flags, the command and its arguments.
// Global flags may appear before or after the command; "--" stops global
// flag parsing.
func Parse(argv []string) (Args, error) {
	remaining, args, err := parseGlobalFlags(argv)
	if err != nil {
		return args, err
	}

	if len(remaining) == 0 {
		args.Command = CmdTUI
		return args, nil
	}

	name := strings.ToLower(remaining[0])
	args.Rest = remaining[1:]

	switch name {
	case "tui", "ui":
		args.Command = CmdTUI
	case "analyze", "analyse":
		args.Command = CmdAnalyze
	case "ask":
		args.Command = CmdAsk
	case "chat":
		args.Command = CmdChat
	case "status", "s":
		args.Command = CmdStatus
	case "admin":
		args.Command = CmdAdmin
	case "config":
		args.Command = CmdConfig
	case "mock-backend", "mock":
		args.Command = CmdMockBackend
	case "version", "--version":
		args.Command = CmdVersion
	case "help", "-h", "--help":
		args.Command = CmdHelp
	default:
		return args, &UsageError{Msg: fmt.Sprintf("unknown command %q", remaining[0])}
	}
	return args, nil
}

func parseGlobalFlags(argv []string) ([]string, Args, error) {
	var args Args
	remaining := make([]string, 0, len(argv))

	value := func(i *int, flag string) (string, error) {
		if *i+1 >= len(argv) {
			return "", &UsageError{Msg: flag + " requires a value"}
		}
		*i++
		return argv[*i], nil
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		name, inline, hasInline := strings.Cut(arg, "=")

		switch name {
		case "--":
			remaining = append(remaining, argv[i:]...)
			return remaining, args, nil

		case "--backend", "--timeout", "--config":
			v := inline
			if !hasInline {
				var err error
				if v, err = value(&i, name); err != nil {
					return nil, args, err
				}
			}
			switch name {
			case "--backend":
				args.Backend = v
			case "--config":
				args.ConfigPath = v
			case "--timeout":
				d, err := ParseDuration(v)
				if err != nil {
					return nil, args, &UsageError{Msg: fmt.Sprintf("invalid --timeout %q: %v", v, err)}
				}
				args.Timeout = d
				args.TimeoutSet = true
			}

		case "--json":
			args.JSON = true
		case "-v", "--verbose":
			args.Verbose = true
		case "-q", "--quiet":
			args.Quiet = true
		case "--no-color":
			args.NoColor = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args, nil
}
