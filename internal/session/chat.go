// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/model"
)

// Chatter sends one chat message to the backend. *api.Client implements it.
type Chatter interface {
	SubmitChatMessage(ctx context.Context, message string, history []string) (string, error)
}

// PendingChat is a chat request that has been recorded but not yet sent.
type PendingChat struct {
	Request
	Message string
	History []string
	Turn    model.Turn
}

// Run sends the message with c on the request's context.
func (p PendingChat) Run(c Chatter) (string, error) {
	return c.SubmitChatMessage(p.Context(), p.Message, p.History)
}

// StartChat appends the user turn and marks the session pending. History is
// captured before the new turn, so it holds the earlier turns only.
//
// A message that is blank after trimming returns api.ErrEmptyMessage and a
// pending session returns ErrBusy; neither changes the session.
func (s *Session) StartChat(parent context.Context, message string) (PendingChat, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return PendingChat{}, api.ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusPending {
		return PendingChat{}, ErrBusy
	}

	history := s.transcript.History()
	turn := s.transcript.AddUser(text)
	req := s.beginLocked(parent)
	s.pendingTurn = turn.ID

	return PendingChat{
		Request: req,
		Message: text,
		History: history,
		Turn:    turn,
	}, nil
}

// FinishChat records the answer of p as an assistant turn. A failed request
// still produces a turn holding the answer the client returned (the fallback
// text). An empty answer is stored as model.NoAnswer; Answer still reports
// it verbatim. It returns false and records nothing when p was aborted or its
// context was cancelled.
func (s *Session) FinishChat(p PendingChat, answer string, err error) (model.Turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(p.Request) {
		return model.Turn{}, false
	}
	if errors.Is(err, context.Canceled) {
		s.resetLocked()
		return model.Turn{}, false
	}

	content := answer
	if err == nil && strings.TrimSpace(answer) == "" {
		content = model.NoAnswer
	}
	turn := s.transcript.AddAssistant(content, err != nil)
	s.answer = answer
	s.finishLocked(err)
	return turn, true
}

// SendChat runs a whole chat exchange synchronously and returns the
// assistant turn. On backend failure the returned turn holds the fallback
// text and err matches api.ErrBackendUnavailable.
func (s *Session) SendChat(ctx context.Context, c Chatter, message string) (model.Turn, error) {
	p, err := s.StartChat(ctx, message)
	if err != nil {
		return model.Turn{}, err
	}
	answer, err := p.Run(c)
	turn, ok := s.FinishChat(p, answer, err)
	if !ok {
		if err == nil {
			err = ErrAborted
		}
		return model.Turn{}, err
	}
	return turn, err
}
