// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none)
// into the process environment. Variables that are already set win, and
// missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		log.Printf("CONFIG_DOTENV | file=%s", file)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - STREAMINTEL_BACKEND_URL: backend.url
//   - NEXT_PUBLIC_BACKEND_URL: backend.url, when STREAMINTEL_BACKEND_URL is unset
//   - STREAMINTEL_TIMEOUT: backend.timeout_seconds (seconds or a duration like "30s")
//   - STREAMINTEL_THEME: ui.theme
//   - STREAMINTEL_LOG_FILE: log.file
//   - STREAMINTEL_VERBOSE: log.verbose
//   - STREAMINTEL_MOCK_ADDR: mock.addr
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("STREAMINTEL_BACKEND_URL"); u != "" {
		c.Backend.URL = u
	} else if u := os.Getenv("NEXT_PUBLIC_BACKEND_URL"); u != "" {
		c.Backend.URL = u
	}

	if t := os.Getenv("STREAMINTEL_TIMEOUT"); t != "" {
		if secs, ok := parseSeconds(t); ok {
			c.Backend.TimeoutSecs = secs
		} else {
			log.Printf("CONFIG_ENV_IGNORED | var=STREAMINTEL_TIMEOUT value=%q", t)
		}
	}

	if theme := os.Getenv("STREAMINTEL_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if file := os.Getenv("STREAMINTEL_LOG_FILE"); file != "" {
		c.Log.File = file
	}
	if v := os.Getenv("STREAMINTEL_VERBOSE"); v != "" {
		c.Log.Verbose = parseBool(v)
	}
	if addr := os.Getenv("STREAMINTEL_MOCK_ADDR"); addr != "" {
		c.Mock.Addr = addr
	}
}

// parseSeconds accepts "45" or a Go duration such as "1m30s".
func parseSeconds(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n, true
	}
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return int(d.Round(time.Second) / time.Second), true
	}
	return 0, false
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
