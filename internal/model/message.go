// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoAnswer stands in for an empty assistant answer, both on screen and in
// the history of later chat requests.
const NoAnswer = "No answer returned from backend."

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the label shown in front of a turn.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "AI"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one entry of a chat transcript.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Failed marks an assistant turn holding the fallback message.
	Failed bool `json:"failed,omitempty"`
}

// NewTurn creates a turn stamped with a fresh ID and the current time.
func NewTurn(role Role, content string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// IsUser reports whether the turn was typed by the user.
func (t Turn) IsUser() bool {
	return t.Role == RoleUser
}

// IsEmpty reports whether the turn has no visible content.
func (t Turn) IsEmpty() bool {
	return strings.TrimSpace(t.Content) == ""
}
