// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"strings"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/model"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
)

// NoAnswer is printed when the backend returned an empty answer.
const NoAnswer = model.NoAnswer

// AnalyzeResult is the data of the analyze command.
type AnalyzeResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Regions     []string `json:"target_regions,omitempty"`
	Answer      string   `json:"answer"`
	LatencyMs   int64    `json:"latency_ms"`
}

// HandleAnalyze runs a single title analysis.
//
//	streamintel analyze --title "Time Loop Colony" -d "..." -r "US, UK"
func HandleAnalyze(ctx context.Context, env *Env) (any, error) {
	p := NewArgParser(env.Args.Rest)

	form := session.AnalysisForm{
		Title:       p.Flag("title", "t"),
		Description: p.Flag("description", "d"),
		Regions:     p.Flag("regions", "r"),
	}
	if form.Title == "" {
		form.Title = strings.Join(p.PositionalFrom(0), " ")
	}
	if strings.TrimSpace(form.Title) == "" {
		return nil, &UsageError{Msg: "analyze requires --title"}
	}

	ctx, stop := interruptible(ctx)
	defer stop()

	sess := session.New()
	env.info("%s\n", MutedStyle.Render("Analyzing "+form.Title+"…"))
	answer, err := sess.RunAnalysis(ctx, env.Client, form)
	if err != nil {
		return nil, err
	}

	req := api.NewAnalyzeRequest(form.Title, form.Description, form.Regions)
	result := AnalyzeResult{
		Title:       req.TitleName,
		Description: req.Description,
		Regions:     req.TargetRegions,
		Answer:      answer,
		LatencyMs:   sess.Latency().Milliseconds(),
	}

	env.info("\n%s\n\n", TitleStyle.Render("Executive Summary"))
	env.printAnswer(answer)
	return result, nil
}

// printAnswer renders a markdown answer to stdout.
func (e *Env) printAnswer(answer string) {
	if answer == "" {
		e.printf("%s\n", MutedStyle.Render(NoAnswer))
		return
	}
	e.printf("%s\n", e.Renderer().Render(answer))
}
