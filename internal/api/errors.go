// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// FallbackMessage is the only text shown to users when the backend cannot be
// reached or answers with something unusable.
const FallbackMessage = "Sorry, something went wrong while contacting the backend."

var (
	// ErrBackendUnavailable covers network failures, non-2xx statuses and
	// bodies that are not valid JSON.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrEmptyMessage is returned when a chat message is blank after trimming.
	// No request is sent.
	ErrEmptyMessage = errors.New("empty message")
)

// BackendError records why a backend call failed. It always matches
// ErrBackendUnavailable via errors.Is.
type BackendError struct {
	Op         string // "analyze_title", "chat", ...
	StatusCode int    // 0 when no response was received
	Body       string // truncated response body, for logs
	Err        error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: backend returned HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: backend returned HTTP %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": " + ErrBackendUnavailable.Error()
	}
}

// Unwrap returns the underlying cause.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBackendUnavailable.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// IsBackendUnavailable reports whether err is a collapsed backend failure.
func IsBackendUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}
