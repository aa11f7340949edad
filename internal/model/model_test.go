// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleDisplayName(t *testing.T) {
	assert.Equal(t, "You", RoleUser.DisplayName())
	assert.Equal(t, "AI", RoleAssistant.DisplayName())
	assert.Equal(t, "system", Role("system").DisplayName())
}

func TestNewTurn(t *testing.T) {
	a := NewTurn(RoleUser, "hi")
	b := NewTurn(RoleUser, "hi")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
	assert.True(t, a.IsUser())
	assert.True(t, NewTurn(RoleAssistant, " \n").IsEmpty())
}

func TestTranscript_History(t *testing.T) {
	tr := NewTranscript()
	assert.Equal(t, []string{}, tr.History())

	tr.AddUser("What works in LATAM?")
	tr.AddAssistant("Telenovela-style thrillers.", false)
	tr.AddUser("And in the US?")

	assert.Equal(t, []string{
		"What works in LATAM?",
		"Telenovela-style thrillers.",
		"And in the US?",
	}, tr.History())
	assert.Equal(t, 3, tr.Len())
}

func TestTranscript_TurnsIsCopy(t *testing.T) {
	tr := NewTranscript()
	tr.AddUser("one")

	turns := tr.Turns()
	turns[0].Content = "changed"

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "one", last.Content)
}

func TestTranscript_Remove(t *testing.T) {
	tr := NewTranscript()
	first := tr.AddUser("one")
	tr.AddAssistant("two", false)

	assert.True(t, tr.Remove(first.ID))
	assert.False(t, tr.Remove(first.ID))
	assert.Equal(t, []string{"two"}, tr.History())
}

func TestTranscript_Prune(t *testing.T) {
	tr := NewTranscript()
	tr.SetMaxTurns(3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		tr.AddUser(s)
	}
	assert.Equal(t, []string{"c", "d", "e"}, tr.History())

	tr.Clear()
	assert.Zero(t, tr.Len())
}
