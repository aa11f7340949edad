// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"io"
)

// JSONResponse is the envelope printed by every command in --json mode.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Command is the command that was executed
	Command string `json:"command"`

	// Data contains the command-specific response data
	Data any `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{Success: true, Command: command, Data: data}
}

// NewJSONErrorResponse creates an error response. The message follows
// userMessage, so backend details never reach the envelope.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := userMessage(err)
	return &JSONResponse{Command: command, Error: &msg}
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
