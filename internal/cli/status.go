// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
)

// StatusResult is the data of the status command.
type StatusResult struct {
	Backend string `json:"backend"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Docs    string `json:"docs,omitempty"`
}

// HandleStatus probes the backend root endpoint.
func HandleStatus(ctx context.Context, env *Env) (any, error) {
	ctx, stop := interruptible(ctx)
	defer stop()

	resp, err := env.Client.Status(ctx)
	if err != nil {
		return nil, err
	}

	result := StatusResult{
		Backend: env.Client.BaseURL(),
		Status:  render.Sanitize(resp.Status),
		Message: render.Sanitize(resp.Message),
		Docs:    render.Sanitize(resp.Docs),
	}

	state := SuccessStyle.Render(result.Status)
	if !resp.OK() {
		state = WarningStyle.Render(result.Status)
	}
	env.printf("%s\n\n", TitleStyle.Render("Backend Status"))
	env.printf("%s%s\n", LabelStyle.Render("Backend"), ValueStyle.Render(result.Backend))
	env.printf("%s%s\n", LabelStyle.Render("Status"), state)
	if result.Message != "" {
		env.printf("%s%s\n", LabelStyle.Render("Message"), ValueStyle.Render(result.Message))
	}
	if result.Docs != "" {
		env.printf("%s%s\n", LabelStyle.Render("Docs"), ValueStyle.Render(result.Docs))
	}
	return result, nil
}

// AdminResult is the data of the admin command.
type AdminResult struct {
	Action  string `json:"action"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleAdmin runs backend maintenance actions.
//
//	streamintel admin rebuild-index
func HandleAdmin(ctx context.Context, env *Env) (any, error) {
	p := NewArgParser(env.Args.Rest)
	action := p.Positional(0)
	if p.PositionalCount() > 1 {
		return nil, &UsageError{Msg: "admin takes a single action"}
	}

	switch action {
	case "rebuild-index", "rebuild_index", "reindex":
	case "":
		return nil, &UsageError{Msg: "admin requires an action: rebuild-index"}
	default:
		return nil, &UsageError{Msg: fmt.Sprintf("unknown admin action: %s", action)}
	}

	ctx, stop := interruptible(ctx)
	defer stop()

	env.info("%s\n", MutedStyle.Render("Rebuilding the knowledge index…"))
	resp, err := env.Client.RebuildIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := AdminResult{
		Action:  "rebuild-index",
		Status:  render.Sanitize(resp.Status),
		Message: render.Sanitize(resp.Message),
	}
	env.printf("%s %s\n", SuccessStyle.Render("[OK]"), result.Message)
	return result, nil
}
