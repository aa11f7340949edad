// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/util"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete client configuration.
type Config struct {
	Version string        `toml:"version" json:"version" yaml:"version"`
	Backend BackendConfig `toml:"backend" json:"backend" yaml:"backend"`
	UI      UIConfig      `toml:"ui" json:"ui" yaml:"ui"`
	Log     LogConfig     `toml:"log" json:"log" yaml:"log"`
	Mock    MockConfig    `toml:"mock" json:"mock" yaml:"mock"`
}

// BackendConfig locates the StreamIntel360 backend.
type BackendConfig struct {
	URL string `toml:"url" json:"url" yaml:"url"`

	// TimeoutSecs bounds each request. 0 leaves it to the transport.
	TimeoutSecs int `toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns TimeoutSecs as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	Theme          string `toml:"theme" json:"theme" yaml:"theme"` // auto, dark, light, notty
	WordWrap       int    `toml:"word_wrap" json:"word_wrap" yaml:"word_wrap"`
	AltScreen      bool   `toml:"alt_screen" json:"alt_screen" yaml:"alt_screen"`
	DefaultTitle   string `toml:"default_title" json:"default_title" yaml:"default_title"`
	DefaultRegions string `toml:"default_regions" json:"default_regions" yaml:"default_regions"`
	MaxTurns       int    `toml:"max_turns" json:"max_turns" yaml:"max_turns"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	File    string `toml:"file" json:"file" yaml:"file"`
	Verbose bool   `toml:"verbose" json:"verbose" yaml:"verbose"`
}

// MockConfig configures the local mock backend.
type MockConfig struct {
	Addr           string   `toml:"addr" json:"addr" yaml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins" yaml:"allowed_origins"`
	RateLimit      float64  `toml:"rate_limit" json:"rate_limit" yaml:"rate_limit"` // requests per second
	Burst          int      `toml:"burst" json:"burst" yaml:"burst"`
	LatencyMs      int      `toml:"latency_ms" json:"latency_ms" yaml:"latency_ms"`
}

// Latency returns LatencyMs as a duration.
func (m MockConfig) Latency() time.Duration {
	return time.Duration(m.LatencyMs) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Backend: BackendConfig{
			URL: "http://127.0.0.1:8000",
		},
		UI: UIConfig{
			Theme:          "auto",
			WordWrap:       100,
			AltScreen:      true,
			DefaultTitle:   "Time Loop Colony",
			DefaultRegions: "US",
			MaxTurns:       500,
		},
		Log: LogConfig{
			File: defaultLogFile(),
		},
		Mock: MockConfig{
			Addr:           "127.0.0.1:8000",
			AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
			RateLimit:      10,
			Burst:          20,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory, ~/.streamintel unless
// STREAMINTEL_HOME is set.
func ConfigDir() (string, error) {
	if dir := os.Getenv("STREAMINTEL_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".streamintel"), nil
}

// ConfigPathTOML returns the path of the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// candidateFiles lists the config files Load looks for, in order.
var candidateFiles = []string{"config.toml", "config.json", "config.yaml", "config.yml"}

// FindConfigFile returns the first existing config file in ConfigDir, or ""
// when there is none.
func FindConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	for _, name := range candidateFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func defaultLogFile() string {
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "streamintel.log")
	}
	return filepath.Join(dir, "streamintel.log")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the first config file found in ConfigDir, falling back to
// defaults when there is none, then applies environment overrides and
// validates the result.
func Load() (*Config, error) {
	path, err := FindConfigFile()
	if err != nil {
		return nil, err
	}
	if path == "" {
		cfg := Default()
		if err := cfg.finalize(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file, picking the format from its extension
// (.json, .yaml/.yml, anything else is TOML). Keys missing from the file keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile reads a config file without environment overrides or
// validation. It is the starting point for editing a file in place.
// A missing file yields the defaults.
func ReadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err := decodeFile(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func decodeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	switch formatOf(path) {
	case "json":
		err = json.Unmarshal(data, cfg)
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", formatOf(path), err)
	}
	return nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

func (c *Config) finalize() error {
	c.ApplyEnvOverrides()
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// fillDefaults restores defaults for values a file set to empty.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if strings.TrimSpace(c.Backend.URL) == "" {
		c.Backend.URL = d.Backend.URL
	}
	c.Backend.URL = strings.TrimRight(strings.TrimSpace(c.Backend.URL), "/")
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.UI.WordWrap == 0 {
		c.UI.WordWrap = d.UI.WordWrap
	}
	if c.UI.MaxTurns == 0 {
		c.UI.MaxTurns = d.UI.MaxTurns
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
	if c.Mock.Addr == "" {
		c.Mock.Addr = d.Mock.Addr
	}
	if c.Mock.Burst == 0 {
		c.Mock.Burst = d.Mock.Burst
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default TOML path.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveFile(cfg, path)
}

// SaveFile writes cfg to path in the format implied by its extension. Files
// are created 0600 and replaced atomically.
func SaveFile(cfg *Config, path string) error {
	var buf bytes.Buffer

	switch formatOf(path) {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	case "yaml":
		buf.WriteString("# streamintel configuration file\n\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	default:
		buf.WriteString("# streamintel configuration file\n")
		buf.WriteString("# Generated by streamintel - edit with care\n\n")
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Mock.AllowedOrigins = append([]string(nil), c.Mock.AllowedOrigins...)
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// ErrUnknownKey is returned by Get and Set for keys that do not exist.
var ErrUnknownKey = errors.New("unknown config key")
