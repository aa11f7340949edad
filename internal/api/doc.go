// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP client for the StreamIntel360 backend.
//
// The backend exposes two content endpoints, /api/analyze_title and
// /api/chat, each answering with a markdown string. The high level calls
// (SubmitAnalysis, SubmitChatMessage) collapse every transport, status and
// decoding failure into a single fixed FallbackMessage so callers can show it
// as-is; the cause is written to the diagnostic log and returned wrapped in a
// *BackendError for callers that want to branch on it.
//
// # Usage
//
//	client := api.NewClient("http://127.0.0.1:8000")
//	answer, err := client.SubmitAnalysis(ctx, "Time Loop Colony", "", "US, UK")
//	if errors.Is(err, api.ErrBackendUnavailable) {
//		// answer == api.FallbackMessage
//	}
//
// The lower level Analyze and Chat calls return the decoded response bodies
// and plain errors.
package api
