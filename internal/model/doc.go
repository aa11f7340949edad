// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model holds the chat transcript types shared by the session, UI and
// CLI layers.
//
// A Transcript is an ordered, in-memory list of Turns. It is never written to
// disk. History derives the plain-text list sent to the backend with each
// chat request; that list carries no role information.
package model
