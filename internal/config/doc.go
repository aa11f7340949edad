// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// streamintel client.
//
// # Configuration Precedence
//
// Lowest to highest:
//   - Built-in defaults (Default)
//   - ~/.streamintel/config.toml, config.json, config.yaml or config.yml
//     (first one found; STREAMINTEL_HOME moves the directory)
//   - .env in the working directory (LoadDotEnv)
//   - Environment variables (STREAMINTEL_*)
//   - Command line flags, applied by the cli package
//
// # Usage
//
//	config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := api.NewClient(cfg.Backend.URL).WithTimeout(cfg.Backend.Timeout())
//
// Watch reloads a file on change so long running views can pick up a new
// backend URL or theme without a restart.
package config
