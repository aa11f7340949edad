// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/config"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
)

// Env is everything a command handler needs.
type Env struct {
	Args       Args
	Config     *config.Config
	ConfigPath string // file the config came from, "" for defaults
	Client     *api.Client

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	logFile io.Closer
	early   *bytes.Buffer
}

// NewEnv loads .env and the configuration, applies the global flags, opens
// the log and builds the API client.
func NewEnv(args Args, stdin io.Reader, stdout, stderr io.Writer) (*Env, error) {
	// Lines logged while loading config are held until the log destination
	// is known.
	early := &bytes.Buffer{}
	log.SetOutput(early)

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("CONFIG_DOTENV_FAILED | error=%v", err)
	}

	cfg, path, err := loadConfig(args.ConfigPath)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, err
	}

	if args.Backend != "" {
		if err := config.ValidateBackendURL(args.Backend); err != nil {
			log.SetOutput(io.Discard)
			return nil, &UsageError{Msg: fmt.Sprintf("invalid --backend: %v", err)}
		}
		cfg.Backend.URL = strings.TrimRight(args.Backend, "/")
	}
	config.SetGlobal(cfg)

	env := &Env{
		Args:       args,
		Config:     cfg,
		ConfigPath: path,
		Stdin:      stdin,
		Stdout:     stdout,
		Stderr:     stderr,
		early:      early,
	}

	// The TUI owns the terminal; it opens its own log file.
	if args.Command != CmdTUI {
		if err := env.setupLogging(); err != nil {
			fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
		}
	}

	timeout := cfg.Backend.Timeout()
	if args.TimeoutSet {
		timeout = args.Timeout
	}
	env.Client = api.NewClient(cfg.Backend.URL).
		WithTimeout(timeout).
		WithUserAgent("streamintel/" + Version)

	lipgloss.SetColorProfile(colorProfile(stdout, args.NoColor))
	return env, nil
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		// A named file that does not exist yet (config init) means defaults.
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			cfg := config.Default()
			cfg.ApplyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, "", fmt.Errorf("invalid config: %w", err)
			}
			return cfg, path, nil
		}
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	found, err := config.FindConfigFile()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	return cfg, found, nil
}

// setupLogging sends log lines to the configured file and, when verbose,
// also to stderr.
func (e *Env) setupLogging() error {
	verbose := e.Args.Verbose || e.Config.Log.Verbose

	var out io.Writer = io.Discard
	if verbose {
		out = e.Stderr
	}

	var openErr error
	if file := e.Config.Log.File; file != "" {
		f, err := openLogFile(file)
		if err != nil {
			openErr = err
		} else {
			e.logFile = f
			if verbose {
				out = io.MultiWriter(f, e.Stderr)
			} else {
				out = f
			}
		}
	}

	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	e.flushEarlyLog()
	return openErr
}

// flushEarlyLog writes the lines held back by NewEnv to the current log
// output.
func (e *Env) flushEarlyLog() {
	if e.early == nil {
		return
	}
	_, _ = log.Writer().Write(e.early.Bytes())
	e.early = nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Close releases the log file.
func (e *Env) Close() error {
	if e.logFile == nil {
		return nil
	}
	log.SetOutput(io.Discard)
	err := e.logFile.Close()
	e.logFile = nil
	return err
}

// Colors reports whether stdout output is colored.
func (e *Env) Colors() bool {
	return colorsEnabled(e.Stdout, e.Args.NoColor)
}

// Renderer returns a markdown renderer sized for stdout. Plain output uses
// the notty style.
func (e *Env) Renderer() *render.Renderer {
	style := e.Config.UI.Theme
	if !e.Colors() {
		style = render.StyleNoTTY
	}
	width := terminalWidth(e.Stdout) - 2
	if e.Config.UI.WordWrap > 0 && e.Config.UI.WordWrap < width {
		width = e.Config.UI.WordWrap
	}
	return render.New(style, width)
}

// printf writes to stdout unless --json is set.
func (e *Env) printf(format string, a ...any) {
	if e.Args.JSON {
		return
	}
	fmt.Fprintf(e.Stdout, format, a...)
}

// info writes secondary text that --quiet suppresses.
func (e *Env) info(format string, a ...any) {
	if e.Args.Quiet {
		return
	}
	e.printf(format, a...)
}
