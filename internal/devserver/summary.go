// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package devserver

import (
	"fmt"
	"strings"
)

// Verdict is the closing recommendation of an executive summary.
type Verdict string

const (
	VerdictGo    Verdict = "Go"
	VerdictPilot Verdict = "Pilot"
	VerdictNoGo  Verdict = "No-Go"
)

// PilotRecommendation replaces the terse "Recommended: Pilot" line.
const PilotRecommendation = "Recommendation: Greenlight a pilot; strong fit with target audience."

// Concept is a title pitched for analysis.
type Concept struct {
	Title       string
	Description string
	Regions     []string
}

// Prompt assembles the concept text the analysis agents receive.
func (c Concept) Prompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\n", c.Title)
	if c.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n\n", c.Description)
	}
	if len(c.Regions) > 0 {
		fmt.Fprintf(&b, "Target regions: %s\n\n", strings.Join(c.Regions, ", "))
	}
	return b.String()
}

// Verdict grades how complete the pitch is: a described title aimed at three
// or more regions is a Go, a described title a Pilot, anything else No-Go.
func (c Concept) Verdict() Verdict {
	switch {
	case strings.TrimSpace(c.Description) == "":
		return VerdictNoGo
	case len(c.Regions) >= 3:
		return VerdictGo
	default:
		return VerdictPilot
	}
}

// AnalysisSummary writes the executive summary for a title.
func AnalysisSummary(c Concept) string {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = "Untitled concept"
	}
	markets := "global audiences"
	if len(c.Regions) > 0 {
		markets = strings.Join(c.Regions, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Executive Summary: %s\n\n", title)
	fmt.Fprintf(&b, "**Overview.** *%s* was assessed for %s. ", title, markets)
	if c.Description != "" {
		fmt.Fprintf(&b, "The pitch (%q) gives the scouts enough to compare against comparable catalog titles.\n\n", firstSentence(c.Description))
	} else {
		b.WriteString("No description was supplied, so the assessment relies on the title alone.\n\n")
	}

	b.WriteString("### Why this could work\n\n")
	b.WriteString("- Clear hook that is easy to market in a single key art image\n")
	fmt.Fprintf(&b, "- Audience overlap with recent breakout titles in %s\n", markets)
	b.WriteString("- Format supports a limited-series commitment before a full order\n\n")

	b.WriteString("### Key risks\n\n")
	b.WriteString("- Crowded release window for the genre\n")
	if len(c.Regions) > 1 {
		b.WriteString("- Localization cost across several target regions\n")
	}
	b.WriteString("- Concept needs a distinctive creative team to stand out\n\n")

	writeRecommendation(&b, c.Verdict())
	return b.String()
}

// ChatSummary answers a free-text question, using the number of earlier
// messages as context.
func ChatSummary(message string, history []string) string {
	message = strings.TrimSpace(message)

	var b strings.Builder
	b.WriteString("## AI Strategy View\n\n")
	fmt.Fprintf(&b, "You asked: *%s*\n\n", firstSentence(message))
	if len(history) > 0 {
		fmt.Fprintf(&b, "Taking the previous %d messages into account, ", len(history))
	}
	b.WriteString("the content scout, audience and competitive agents agree on the points below.\n\n")
	b.WriteString("- Lead with the strongest character hook in marketing\n")
	b.WriteString("- Test the concept with a short-form pilot before a season order\n")
	b.WriteString("- Track completion rate in the first two weeks as the go/no-go signal\n\n")

	writeRecommendation(&b, VerdictPilot)
	return b.String()
}

func writeRecommendation(b *strings.Builder, v Verdict) {
	fmt.Fprintf(b, "Recommendation:\n\nRecommended: %s\n", v)
}

// NormalizeRecommendation rewrites the "Recommended: Pilot" line (with or
// without its "Recommendation:" heading) into PilotRecommendation. Other
// verdicts are left alone.
func NormalizeRecommendation(answer string) string {
	if answer == "" {
		return answer
	}
	for _, pat := range []string{
		"Recommendation:\n\nRecommended: Pilot",
		"Recommendation:\r\n\r\nRecommended: Pilot",
		"Recommendation:\nRecommended: Pilot",
		"Recommendation:\r\nRecommended: Pilot",
	} {
		if strings.Contains(answer, pat) {
			return strings.ReplaceAll(answer, pat, PilotRecommendation)
		}
	}
	return strings.ReplaceAll(answer, "Recommended: Pilot", PilotRecommendation)
}

func firstSentence(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if i := strings.IndexAny(s, ".?!"); i >= 0 && i < len(s)-1 {
		s = s[:i+1]
	}
	const maxLen = 160
	if r := []rune(s); len(r) > maxLen {
		s = string(r[:maxLen]) + "…"
	}
	return s
}
