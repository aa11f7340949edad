// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// REQUESTS
// =============================================================================

// AnalyzeRequest is the body of POST /api/analyze_title.
type AnalyzeRequest struct {
	TitleName     string   `json:"title_name"`
	Description   string   `json:"description,omitempty"`
	TargetRegions []string `json:"target_regions,omitempty"`
}

// NewAnalyzeRequest builds a request from raw form values. A blank
// description and an empty region list are left out of the JSON body.
func NewAnalyzeRequest(titleName, description, regionsInput string) AnalyzeRequest {
	req := AnalyzeRequest{
		TitleName:     normalize(titleName),
		TargetRegions: ParseRegions(regionsInput),
	}
	if strings.TrimSpace(description) != "" {
		req.Description = normalize(description)
	}
	return req
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string   `json:"message"`
	History []string `json:"history"`
}

// NewChatRequest builds a request from a chat message and the prior message
// texts, oldest first. It copies history so later transcript changes never
// reach a payload that was already sent.
func NewChatRequest(message string, history []string) ChatRequest {
	h := make([]string, len(history))
	copy(h, history)
	return ChatRequest{
		Message: normalize(strings.TrimSpace(message)),
		History: h,
	}
}

// =============================================================================
// RESPONSES
// =============================================================================

// AnalyzeResponse is the decoded body of /api/analyze_title.
// Answer is empty when the backend leaves it out.
type AnalyzeResponse struct {
	Answer string `json:"answer"`
}

// ChatResponse is the decoded body of /api/chat.
type ChatResponse struct {
	SessionID string            `json:"session_id"`
	Answer    string            `json:"answer"`
	Sources   []json.RawMessage `json:"sources"`
}

// StatusResponse is the body of the backend root endpoint.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Docs    string `json:"docs,omitempty"`
}

// OK reports whether the backend described itself as healthy.
func (s *StatusResponse) OK() bool {
	return strings.EqualFold(s.Status, "ok")
}

// AdminResponse is the body of admin endpoints such as rebuild_index.
type AdminResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func normalize(s string) string {
	return norm.NFC.String(s)
}
