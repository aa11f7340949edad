// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/model"
)

var (
	// ErrBusy is returned when a request is started while another is pending.
	ErrBusy = errors.New("request already in progress")

	// ErrAborted is returned by the synchronous flows when the request was
	// aborted before its result could be recorded.
	ErrAborted = errors.New("request aborted")
)

// Request identifies one outstanding backend call.
type Request struct {
	ctx context.Context
	seq uint64
}

// Context returns the context the backend call must run on.
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Seq returns the sequence number of the request within its session.
func (r Request) Seq() uint64 {
	return r.seq
}

// Session is the explicit state object of one UI surface.
// It must be used through a pointer; the zero value is not usable.
type Session struct {
	id string

	mu         sync.Mutex
	status     Status
	seq        uint64
	cancel     context.CancelFunc
	startedAt  time.Time
	latency    time.Duration
	answer     string
	err        error
	transcript *model.Transcript

	// pendingTurn is the user turn waiting for an answer.
	pendingTurn string
}

// New creates an idle session with an empty transcript.
func New() *Session {
	return &Session{
		id:         uuid.NewString(),
		transcript: model.NewTranscript(),
	}
}

// SetMaxTurns bounds the transcript. Values below 2 disable the bound.
func (s *Session) SetMaxTurns(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.SetMaxTurns(n)
}

// ID returns the client-side identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// Status returns the current status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Busy reports whether a request is outstanding.
func (s *Session) Busy() bool {
	return s.Status() == StatusPending
}

// Answer returns the answer of the last completed request. After a failure
// it is the fallback text the client returned.
func (s *Session) Answer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answer
}

// Err returns the error of the last request, nil after a success.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Latency returns how long the last completed request took.
func (s *Session) Latency() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latency
}

// Transcript returns a copy of the chat turns, oldest first.
func (s *Session) Transcript() []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Turns()
}

// TurnCount returns the number of transcript turns.
func (s *Session) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Len()
}

// History returns the plain-text history the next chat request will carry.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.History()
}

// Begin marks the session pending and returns the request handle. It is the
// building block of the chat and analysis flows and may be used directly for
// other single-shot calls.
func (s *Session) Begin(parent context.Context) (Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusPending {
		return Request{}, ErrBusy
	}
	return s.beginLocked(parent), nil
}

// Finish records the outcome of req. It returns false when req is no longer
// current because it was aborted or superseded.
func (s *Session) Finish(req Request, answer string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(req) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		s.resetLocked()
		return false
	}
	s.answer = answer
	s.finishLocked(err)
	return true
}

// Abort cancels the outstanding request, if any, and returns the session to
// Idle. The user turn of an aborted chat request is removed so the
// transcript only holds answered exchanges. Its late result is ignored.
func (s *Session) Abort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusPending {
		return false
	}
	log.Printf("SESSION_ABORT | session=%s seq=%d", s.id, s.seq)
	s.resetLocked()
	return true
}

// Reset aborts any outstanding request and clears the transcript and the
// last answer.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusPending {
		s.resetLocked()
	}
	s.transcript.Clear()
	s.status = StatusIdle
	s.answer = ""
	s.err = nil
	s.latency = 0
}

func (s *Session) beginLocked(parent context.Context) Request {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	s.seq++
	s.cancel = cancel
	s.status = StatusPending
	s.err = nil
	s.startedAt = time.Now()
	return Request{ctx: ctx, seq: s.seq}
}

func (s *Session) currentLocked(req Request) bool {
	return s.status == StatusPending && req.seq == s.seq
}

func (s *Session) finishLocked(err error) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.latency = time.Since(s.startedAt)
	s.pendingTurn = ""
	s.err = err
	if err != nil {
		s.status = StatusFailed
		return
	}
	s.status = StatusSucceeded
}

// resetLocked cancels the pending request and rolls back its user turn.
func (s *Session) resetLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.pendingTurn != "" {
		s.transcript.Remove(s.pendingTurn)
		s.pendingTurn = ""
	}
	s.seq++
	s.status = StatusIdle
}
