// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"strings"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
)

// AskResult is the data of the ask command.
type AskResult struct {
	Message   string `json:"message"`
	Answer    string `json:"answer"`
	LatencyMs int64  `json:"latency_ms"`
}

// HandleAsk sends one chat message with an empty history.
func HandleAsk(ctx context.Context, env *Env) (any, error) {
	p := NewArgParser(env.Args.Rest)
	message := strings.TrimSpace(strings.Join(p.PositionalFrom(0), " "))
	if message == "" {
		return nil, &UsageError{Msg: `ask requires a message, e.g. streamintel ask "Who is the audience?"`}
	}

	ctx, stop := interruptible(ctx)
	defer stop()

	sess := session.New()
	if _, err := sess.SendChat(ctx, env.Client, message); err != nil {
		return nil, err
	}

	answer := sess.Answer()
	env.printAnswer(answer)
	return AskResult{
		Message:   message,
		Answer:    answer,
		LatencyMs: sess.Latency().Milliseconds(),
	}, nil
}
