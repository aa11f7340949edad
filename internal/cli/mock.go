// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/devserver"
)

// HandleMockBackend serves the local mock backend until interrupted.
//
//	streamintel mock-backend [--addr 127.0.0.1:8000] [--latency 2s]
func HandleMockBackend(ctx context.Context, env *Env) (any, error) {
	p := NewArgParser(env.Args.Rest)
	if p.HasFlag("addr") && p.Flag("addr") == "" {
		return nil, &UsageError{Msg: "--addr requires a value"}
	}
	mock := env.Config.Mock

	opts := devserver.Options{
		Addr:           p.FlagOrDefault("addr", mock.Addr),
		AllowedOrigins: mock.AllowedOrigins,
		RateLimit:      mock.RateLimit,
		Burst:          mock.Burst,
		Latency:        mock.Latency(),
	}
	latency, ok, err := p.DurationFlag("latency")
	if err != nil {
		return nil, &UsageError{Msg: "invalid --latency: " + err.Error()}
	}
	if ok {
		opts.Latency = latency
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	srv := devserver.New(opts)
	env.info("%s %s\n", SuccessStyle.Render("Mock backend listening on"), "http://"+srv.Addr())
	env.info("%s\n", MutedStyle.Render("Press Ctrl+C to stop."))
	if err := srv.ListenAndServe(ctx); err != nil {
		return nil, err
	}
	return map[string]any{
		"addr":          srv.Addr(),
		"requests":      srv.Requests(),
		"index_version": srv.IndexVersion(),
	}, nil
}
