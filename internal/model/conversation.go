// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// DefaultMaxTurns bounds a transcript; the oldest turns are dropped first.
const DefaultMaxTurns = 500

// Transcript is the ordered list of turns of one chat session.
// It is not safe for concurrent use; the owning session serializes access.
type Transcript struct {
	turns    []Turn
	maxTurns int
}

// NewTranscript creates an empty transcript with DefaultMaxTurns.
func NewTranscript() *Transcript {
	return &Transcript{maxTurns: DefaultMaxTurns}
}

// SetMaxTurns changes the bound. Values below 2 disable the bound.
func (t *Transcript) SetMaxTurns(n int) {
	t.maxTurns = n
	t.prune()
}

// Append adds a turn at the end.
func (t *Transcript) Append(turn Turn) {
	t.turns = append(t.turns, turn)
	t.prune()
}

// AddUser appends a user turn and returns it.
func (t *Transcript) AddUser(content string) Turn {
	turn := NewTurn(RoleUser, content)
	t.Append(turn)
	return turn
}

// AddAssistant appends an assistant turn and returns it.
func (t *Transcript) AddAssistant(content string, failed bool) Turn {
	turn := NewTurn(RoleAssistant, content)
	turn.Failed = failed
	t.Append(turn)
	return turn
}

// Remove deletes the turn with the given ID.
func (t *Transcript) Remove(id string) bool {
	for i, turn := range t.turns {
		if turn.ID == id {
			t.turns = append(t.turns[:i], t.turns[i+1:]...)
			return true
		}
	}
	return false
}

// Turns returns a copy of the turns, oldest first.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Last returns the most recent turn.
func (t *Transcript) Last() (Turn, bool) {
	if len(t.turns) == 0 {
		return Turn{}, false
	}
	return t.turns[len(t.turns)-1], true
}

// History returns the content of every turn, oldest first, in the shape the
// backend expects for a chat request. Roles are not included.
func (t *Transcript) History() []string {
	history := make([]string, 0, len(t.turns))
	for _, turn := range t.turns {
		history = append(history, turn.Content)
	}
	return history
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Clear removes every turn.
func (t *Transcript) Clear() {
	t.turns = nil
}

func (t *Transcript) prune() {
	if t.maxTurns < 2 || len(t.turns) <= t.maxTurns {
		return
	}
	drop := len(t.turns) - t.maxTurns
	t.turns = append([]Turn(nil), t.turns[drop:]...)
}
