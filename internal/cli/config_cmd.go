// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/config"
)

// ConfigValue is the data of config get and set.
type ConfigValue struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Path  string `json:"path,omitempty"`
}

// HandleConfig dispatches the config subcommands.
//
//	streamintel config [show|path|init|get|set|keys]
func HandleConfig(ctx context.Context, env *Env) (any, error) {
	p := NewArgParser(env.Args.Rest, "force", "f")
	sub := p.Positional(0)

	switch sub {
	case "", "show":
		return configShow(env)
	case "path":
		return configPath(env)
	case "init":
		return configInit(env, p.BoolFlag("force", "f"))
	case "get":
		return configGet(env, p.Positional(1))
	case "set":
		return configSet(env, p.Positional(1), strings.Join(p.PositionalFrom(2), " "))
	case "keys":
		keys := config.Keys()
		for _, k := range keys {
			env.printf("%s\n", k)
		}
		return keys, nil
	default:
		return nil, &UsageError{Msg: fmt.Sprintf("unknown config subcommand: %s", sub)}
	}
}

func configShow(env *Env) (any, error) {
	source := env.ConfigPath
	if source == "" {
		source = "(built-in defaults)"
	}
	env.info("%s\n\n", MutedStyle.Render("# "+source))
	env.printf("%s", env.Config.String())
	return env.Config, nil
}

// targetPath is the file config init and set write to.
func targetPath(env *Env) (string, error) {
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

func configPath(env *Env) (any, error) {
	path, err := targetPath(env)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil
	env.printf("%s\n", path)
	return map[string]any{"path": path, "exists": exists}, nil
}

func configInit(env *Env, force bool) (any, error) {
	path, err := targetPath(env)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return nil, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveFile(config.Default(), path); err != nil {
		return nil, err
	}
	log.Printf("CONFIG_INIT | path=%s", path)
	env.printf("%s Wrote %s\n", SuccessStyle.Render("[OK]"), path)
	return map[string]any{"path": path}, nil
}

func configGet(env *Env, key string) (any, error) {
	if key == "" {
		return nil, &UsageError{Msg: "config get requires a key (see 'streamintel config keys')"}
	}
	value, err := env.Config.Get(key)
	if err != nil {
		return nil, &UsageError{Msg: err.Error()}
	}
	env.printf("%v\n", value)
	return ConfigValue{Key: key, Value: value}, nil
}

// configSet edits the file itself, not the effective config, so values that
// came from the environment are not written back.
func configSet(env *Env, key, value string) (any, error) {
	if key == "" {
		return nil, &UsageError{Msg: "config set requires a key and a value"}
	}
	path, err := targetPath(env)
	if err != nil {
		return nil, err
	}

	cfg, err := config.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Set(key, value); err != nil {
		return nil, &UsageError{Msg: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &UsageError{Msg: err.Error()}
	}
	if err := config.SaveFile(cfg, path); err != nil {
		return nil, err
	}

	stored, _ := cfg.Get(key)
	log.Printf("CONFIG_SET | key=%s path=%s", key, path)
	env.printf("%s %s = %v\n", SuccessStyle.Render("[OK]"), key, stored)
	return ConfigValue{Key: key, Value: stored, Path: path}, nil
}
