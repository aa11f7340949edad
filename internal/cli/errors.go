// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitBackendError indicates the backend could not be used
	ExitBackendError = 3
	// ExitInterrupted indicates the user cancelled the request
	ExitInterrupted = 130
)

// UsageError is a mistake in the command line.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsageError
	case api.IsBackendUnavailable(err):
		return ExitBackendError
	case errors.Is(err, context.Canceled), errors.Is(err, session.ErrAborted):
		return ExitInterrupted
	default:
		return ExitGeneralError
	}
}

// userMessage is the text shown for err. Backend failures collapse to the
// fallback message; their details are only logged.
func userMessage(err error) string {
	switch {
	case api.IsBackendUnavailable(err):
		return api.FallbackMessage
	case errors.Is(err, context.Canceled), errors.Is(err, session.ErrAborted):
		return "request cancelled"
	default:
		return err.Error()
	}
}
