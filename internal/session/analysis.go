// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "context"

// Analyzer requests a title analysis. *api.Client implements it.
type Analyzer interface {
	SubmitAnalysis(ctx context.Context, titleName, description, regionsInput string) (string, error)
}

// AnalysisForm holds the raw field values of the analyze form.
type AnalysisForm struct {
	Title       string
	Description string
	Regions     string
}

// PendingAnalysis is an analysis request that has not been sent yet.
// Form is a copy, so edits to the form after submit do not reach it.
type PendingAnalysis struct {
	Request
	Form AnalysisForm
}

// Run sends the analysis through a using the request's context.
func (p PendingAnalysis) Run(a Analyzer) (string, error) {
	return a.SubmitAnalysis(p.Context(), p.Form.Title, p.Form.Description, p.Form.Regions)
}

// StartAnalysis marks the session pending. It returns ErrBusy while another
// request is outstanding.
func (s *Session) StartAnalysis(parent context.Context, form AnalysisForm) (PendingAnalysis, error) {
	req, err := s.Begin(parent)
	if err != nil {
		return PendingAnalysis{}, err
	}
	return PendingAnalysis{Request: req, Form: form}, nil
}

// FinishAnalysis records the outcome of p. See Finish.
func (s *Session) FinishAnalysis(p PendingAnalysis, answer string, err error) bool {
	return s.Finish(p.Request, answer, err)
}

// RunAnalysis performs a whole analysis synchronously. On backend failure the
// returned answer is the fallback text and err matches
// api.ErrBackendUnavailable.
func (s *Session) RunAnalysis(ctx context.Context, a Analyzer, form AnalysisForm) (string, error) {
	p, err := s.StartAnalysis(ctx, form)
	if err != nil {
		return "", err
	}
	answer, err := p.Run(a)
	if !s.FinishAnalysis(p, answer, err) {
		if err == nil {
			err = ErrAborted
		}
		return "", err
	}
	return answer, err
}
