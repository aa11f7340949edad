// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "dark", "light", "notty"}

// Validate checks every field and returns ValidateErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if err := ValidateBackendURL(c.Backend.URL); err != nil {
		add("backend.url", "%v", err)
	}
	if c.Backend.TimeoutSecs < 0 {
		add("backend.timeout_seconds", "must not be negative, got %d", c.Backend.TimeoutSecs)
	}

	if !isValidTheme(c.UI.Theme) {
		add("ui.theme", "invalid theme '%s', must be one of: %s", c.UI.Theme, strings.Join(ValidThemes, ", "))
	}
	if c.UI.WordWrap < 20 || c.UI.WordWrap > 400 {
		add("ui.word_wrap", "must be between 20 and 400, got %d", c.UI.WordWrap)
	}
	if c.UI.MaxTurns < 0 {
		add("ui.max_turns", "must not be negative, got %d", c.UI.MaxTurns)
	}

	if _, _, err := net.SplitHostPort(c.Mock.Addr); err != nil {
		add("mock.addr", "invalid listen address '%s': %v", c.Mock.Addr, err)
	}
	if c.Mock.RateLimit < 0 {
		add("mock.rate_limit", "must not be negative, got %g", c.Mock.RateLimit)
	}
	if c.Mock.Burst < 1 {
		add("mock.burst", "must be at least 1, got %d", c.Mock.Burst)
	}
	if c.Mock.LatencyMs < 0 {
		add("mock.latency_ms", "must not be negative, got %d", c.Mock.LatencyMs)
	}
	for _, origin := range c.Mock.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			add("mock.allowed_origins", "invalid origin '%s'", origin)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateBackendURL checks that raw is an absolute http(s) URL without
// query or fragment.
func ValidateBackendURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL '%s': %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL '%s' must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL '%s' has no host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("URL '%s' must not carry a query or fragment", raw)
	}
	return nil
}

func isValidTheme(theme string) bool {
	for _, t := range ValidThemes {
		if t == theme {
			return true
		}
	}
	return false
}
