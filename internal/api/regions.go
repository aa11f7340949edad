// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "strings"

// ParseRegions splits comma separated region input into trimmed, non-empty
// entries in input order. It returns nil when nothing is left so the field
// can be omitted from the request.
//
//	ParseRegions("US, , UK,") // []string{"US", "UK"}
//	ParseRegions("")          // nil
func ParseRegions(input string) []string {
	var regions []string
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(normalize(token))
		if token == "" {
			continue
		}
		regions = append(regions, token)
	}
	return regions
}

// JoinRegions is the inverse used when showing parsed regions back to users.
func JoinRegions(regions []string) string {
	return strings.Join(regions, ", ")
}
