// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across packages: display-width
// aware string handling for the terminal views and atomic file writes for
// configuration.
package util
