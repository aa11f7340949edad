// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
)

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"tui", "chat"}, CmdTUI},
		{[]string{"ui"}, CmdTUI},
		{[]string{"analyze"}, CmdAnalyze},
		{[]string{"Analyse"}, CmdAnalyze},
		{[]string{"ask", "hi"}, CmdAsk},
		{[]string{"chat"}, CmdChat},
		{[]string{"s"}, CmdStatus},
		{[]string{"admin", "rebuild-index"}, CmdAdmin},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"mock"}, CmdMockBackend},
		{[]string{"--version"}, CmdVersion},
		{[]string{"-h"}, CmdHelp},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.argv), func(t *testing.T) {
			args, err := Parse(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, args.Command)
		})
	}
}

func TestParse_UnknownCommand(t *testing.T) {
	_, err := Parse([]string{"frobnicate"})
	var usage *UsageError
	require.ErrorAs(t, err, &usage)
	assert.Contains(t, usage.Msg, "frobnicate")
}

func TestParse_GlobalFlagsAnywhere(t *testing.T) {
	args, err := Parse([]string{
		"--backend", "http://10.0.0.5:8000",
		"analyze", "--title", "Dune",
		"--json", "--timeout=45", "-q", "--no-color", "--config", "/tmp/c.toml",
	})
	require.NoError(t, err)

	assert.Equal(t, CmdAnalyze, args.Command)
	assert.Equal(t, "http://10.0.0.5:8000", args.Backend)
	assert.Equal(t, 45*time.Second, args.Timeout)
	assert.True(t, args.TimeoutSet)
	assert.True(t, args.JSON)
	assert.True(t, args.Quiet)
	assert.True(t, args.NoColor)
	assert.Equal(t, "/tmp/c.toml", args.ConfigPath)
	assert.Equal(t, []string{"--title", "Dune"}, args.Rest)
}

func TestParse_DoubleDashStopsGlobalFlags(t *testing.T) {
	args, err := Parse([]string{"ask", "--", "--json"})
	require.NoError(t, err)
	assert.False(t, args.JSON)
	assert.Equal(t, []string{"--", "--json"}, args.Rest)

	p := NewArgParser(args.Rest)
	assert.Equal(t, "--json", p.Positional(0))
}

func TestParse_FlagErrors(t *testing.T) {
	_, err := Parse([]string{"--backend"})
	assert.Equal(t, ExitUsageError, ExitCodeFor(err))

	_, err = Parse([]string{"--timeout", "soon", "status"})
	assert.Equal(t, ExitUsageError, ExitCodeFor(err))

	_, err = Parse([]string{"--timeout", "-5", "status"})
	assert.Equal(t, ExitUsageError, ExitCodeFor(err))
}

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{
		"-t", "Time Loop Colony",
		"--regions=US, UK",
		"--force",
		"extra", "words",
	}, "force")

	assert.Equal(t, "Time Loop Colony", p.Flag("title", "t"))
	assert.Equal(t, "US, UK", p.Flag("regions", "r"))
	assert.Equal(t, "", p.Flag("description", "d"))
	assert.Equal(t, "fallback", p.FlagOrDefault("addr", "fallback"))
	assert.True(t, p.BoolFlag("force"))
	assert.True(t, p.HasFlag("--force"))
	assert.False(t, p.HasFlag("quiet"))
	assert.Equal(t, 2, p.PositionalCount())
	assert.Equal(t, []string{"extra", "words"}, p.PositionalFrom(0))
	assert.Equal(t, []string{}, p.PositionalFrom(5))
	assert.Equal(t, "", p.Positional(9))
}

func TestArgParser_BoolFlagDoesNotSwallowValue(t *testing.T) {
	p := NewArgParser([]string{"init", "--force", "now"}, "force")
	assert.True(t, p.BoolFlag("force"))
	assert.Equal(t, []string{"init", "now"}, p.PositionalFrom(0))

	undeclared := NewArgParser([]string{"--force", "now"})
	assert.Equal(t, "now", undeclared.Flag("force"))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30", 30 * time.Second, false},
		{"0", 0, false},
		{"1500ms", 1500 * time.Millisecond, false},
		{" 2m ", 2 * time.Minute, false},
		{"-1", 0, true},
		{"-3s", 0, true},
		{"later", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationFlag(t *testing.T) {
	p := NewArgParser([]string{"--latency", "250ms", "--bad", "x"})

	d, ok, err := p.DurationFlag("latency")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, d)

	_, ok, err = p.DurationFlag("missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = p.DurationFlag("bad")
	assert.Equal(t, ExitUsageError, ExitCodeFor(err))
}

// =============================================================================
// ERROR AND JSON TESTS
// =============================================================================

func TestExitCodeFor(t *testing.T) {
	backend := &api.BackendError{Op: "chat", Err: errors.New("connection refused")}

	assert.Equal(t, ExitSuccess, ExitCodeFor(nil))
	assert.Equal(t, ExitUsageError, ExitCodeFor(&UsageError{Msg: "bad"}))
	assert.Equal(t, ExitBackendError, ExitCodeFor(backend))
	assert.Equal(t, ExitBackendError, ExitCodeFor(fmt.Errorf("wrapped: %w", backend)))
	assert.Equal(t, ExitInterrupted, ExitCodeFor(context.Canceled))
	assert.Equal(t, ExitInterrupted, ExitCodeFor(session.ErrAborted))
	assert.Equal(t, ExitGeneralError, ExitCodeFor(errors.New("disk full")))
}

func TestUserMessage_HidesBackendDetails(t *testing.T) {
	err := &api.BackendError{Op: "analyze", StatusCode: 500, Err: errors.New("traceback: secret")}

	assert.Equal(t, api.FallbackMessage, userMessage(err))
	assert.Equal(t, "request cancelled", userMessage(context.Canceled))
	assert.Equal(t, "disk full", userMessage(errors.New("disk full")))
}

func TestJSONResponse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONResponse("ask", AskResult{Message: "hi", Answer: "hello"}).Print(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "ask", decoded["command"])
	assert.Nil(t, decoded["error"])
	assert.Equal(t, "hello", decoded["data"].(map[string]any)["answer"])

	buf.Reset()
	backend := &api.BackendError{Op: "chat", Err: errors.New("refused")}
	require.NoError(t, NewJSONErrorResponse("ask", backend).Print(&buf))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, api.FallbackMessage, decoded["error"])
	assert.NotContains(t, buf.String(), "refused")
}
