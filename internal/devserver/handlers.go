// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package devserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// ============================================================================
// WIRE TYPES
// ============================================================================

// Pointers distinguish a missing field from an empty one.
type analyzeRequest struct {
	TitleName     *string  `json:"title_name"`
	Description   *string  `json:"description"`
	TargetRegions []string `json:"target_regions"`
}

type chatRequest struct {
	Message *string  `json:"message"`
	History []string `json:"history"`
}

type answerResponse struct {
	SessionID string           `json:"session_id"`
	Answer    string           `json:"answer"`
	Sources   []map[string]any `json:"sources"`
}

// fieldError is one entry of a FastAPI validation error.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "StreamIntel360 backend is running",
		"docs":    "/docs",
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TitleName == nil {
		writeValidationError(w, "title_name")
		return
	}
	if !s.delay(r) {
		return
	}

	c := Concept{Title: *req.TitleName, Regions: req.TargetRegions}
	if req.Description != nil {
		c.Description = *req.Description
	}
	answer := NormalizeRecommendation(AnalysisSummary(c))

	s.requests.Add(1)
	log.Printf("ANALYZE | title=%q regions=%d request_id=%s", c.Title, len(c.Regions), middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, answerResponse{
		SessionID: uuid.NewString(),
		Answer:    answer,
		Sources:   []map[string]any{},
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Message == nil {
		writeValidationError(w, "message")
		return
	}
	if !s.delay(r) {
		return
	}

	answer := NormalizeRecommendation(ChatSummary(*req.Message, req.History))

	s.requests.Add(1)
	log.Printf("CHAT | history=%d request_id=%s", len(req.History), middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, answerResponse{
		SessionID: uuid.NewString(),
		Answer:    answer,
		Sources: []map[string]any{
			{"title": "StreamIntel360 catalog index", "index_version": s.indexVersion.Load()},
		},
	})
}

func (s *Server) handleRebuildIndex(w http.ResponseWriter, r *http.Request) {
	version := s.indexVersion.Add(1)
	log.Printf("INDEX_REBUILT | version=%d", version)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Index rebuilt",
	})
}

// ============================================================================
// HELPERS
// ============================================================================

// delay waits for the configured latency. It returns false if the client
// went away first.
func (s *Server) delay(r *http.Request) bool {
	if s.opts.Latency <= 0 {
		return true
	}
	t := time.NewTimer(s.opts.Latency)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

// decodeBody decodes a JSON body, answering 422 on malformed input the way
// FastAPI does.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": "Request body too large"})
			return false
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []fieldError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}},
		})
		return false
	}
	return true
}

func writeValidationError(w http.ResponseWriter, field string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []fieldError{{Loc: []string{"body", field}, Msg: "Field required", Type: "missing"}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("RESPONSE_WRITE_FAILED | error=%v", err)
	}
}
