// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/app"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// HandleTUI runs the full screen interface.
//
//	streamintel [tui] [home|analyze|chat]
func HandleTUI(ctx context.Context, env *Env) (any, error) {
	if env.Args.JSON {
		return nil, &UsageError{Msg: "the TUI has no JSON output"}
	}
	if !IsTTY() || !IsStdoutTTY() {
		return nil, errors.New("the TUI needs an interactive terminal; try 'streamintel analyze' or 'streamintel ask'")
	}

	p := NewArgParser(env.Args.Rest)
	start, ok := app.ParsePage(p.Positional(0))
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("unknown page: %s (home, analyze, chat)", p.Positional(0))}
	}

	styles.ApplyColorProfile(env.Args.NoColor)

	// Log lines would corrupt the screen; they only go to the file.
	log.SetOutput(io.Discard)
	if logFile := env.Config.Log.File; logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0700); err == nil {
			if f, err := tea.LogToFile(logFile, "streamintel "); err == nil {
				defer f.Close()
			}
		}
	}
	env.flushEarlyLog()

	m := app.New(ctx, env.Client, env.Config, start)

	// Flags override the file, and a reload would silently undo them.
	if env.ConfigPath != "" && env.Args.Backend == "" && !env.Args.TimeoutSet {
		if err := m.WatchConfig(env.ConfigPath); err != nil {
			log.Printf("CONFIG_WATCH_FAILED | path=%s error=%v", env.ConfigPath, err)
		}
	}

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}
	if env.Config.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	log.Printf("TUI_START | page=%s backend=%s", start, env.Client.BaseURL())
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("error running streamintel: %w", err)
	}
	return nil, nil
}
