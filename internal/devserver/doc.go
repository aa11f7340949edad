// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package devserver implements a local stand-in for the StreamIntel360
// backend.
//
// It serves the same routes as the real service with deterministic markdown
// answers, so the terminal client can be exercised without the Python
// backend or an LLM key:
//
//	GET  /                         service status
//	POST /api/analyze_title        executive summary for a title
//	POST /api/chat                 executive summary for a free-text concept
//	POST /api/admin/rebuild_index  bumps the in-memory index version
//
// Requests missing a required field are answered with 422 and a
// FastAPI-style {"detail": [...]} body. A token bucket rate limiter answers
// 429 when exceeded.
//
// # Usage
//
//	srv := devserver.New(devserver.Options{Addr: "127.0.0.1:8000"})
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
package devserver
