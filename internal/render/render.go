// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns backend markdown answers into terminal output.
//
// Answers are untrusted: Sanitize removes terminal escape sequences, stray
// control characters and HTML before anything reaches the screen. Render
// sanitizes and then formats with glamour, falling back to the sanitized
// text if glamour fails.
package render

import (
	"html"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
)

// Styles accepted by New, matching config ui.theme.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// DefaultWidth is the word wrap used when none is given.
const DefaultWidth = 80

// policy strips every HTML element. Script and style bodies are dropped.
var policy = bluemonday.StrictPolicy()

// Renderer wraps a glamour renderer whose style and width can change at run
// time. It is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	style string
	width int
	tr    *glamour.TermRenderer
}

// New creates a renderer. Unknown styles render as notty.
func New(style string, width int) *Renderer {
	r := &Renderer{}
	r.configure(style, width)
	return r
}

// Style returns the active style name.
func (r *Renderer) Style() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

// Width returns the active word wrap width.
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

// SetWidth changes the word wrap width. It is a no-op when unchanged.
func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	same := normalizeWidth(width) == r.width
	style := r.style
	r.mu.Unlock()
	if !same {
		r.configure(style, width)
	}
}

// SetStyle changes the glamour style.
func (r *Renderer) SetStyle(style string) {
	r.mu.Lock()
	width := r.width
	r.mu.Unlock()
	r.configure(style, width)
}

// Render sanitizes markdown and formats it for the terminal.
func (r *Renderer) Render(markdown string) string {
	clean := Sanitize(markdown)

	r.mu.Lock()
	tr := r.tr
	r.mu.Unlock()
	if tr == nil {
		return clean
	}

	out, err := tr.Render(clean)
	if err != nil {
		log.Printf("RENDER_FAILED | error=%v", err)
		return clean
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) configure(style string, width int) {
	style = normalizeStyle(style)
	width = normalizeWidth(width)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		log.Printf("RENDER_INIT_FAILED | style=%s error=%v", style, err)
		tr = nil
	}

	r.mu.Lock()
	r.style, r.width, r.tr = style, width, tr
	r.mu.Unlock()
}

func normalizeStyle(style string) string {
	switch s := strings.ToLower(strings.TrimSpace(style)); s {
	case StyleAuto, StyleDark, StyleLight, StyleNoTTY:
		return s
	case "":
		return StyleAuto
	default:
		return StyleNoTTY
	}
}

func normalizeWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	return width
}

// controlRef matches numeric character references, with or without the
// closing semicolon.
var controlRef = regexp.MustCompile(`&#(?:[xX]([0-9a-fA-F]{1,8})|([0-9]{1,10}));?`)

// Sanitize makes untrusted text safe to print: ANSI escape sequences and
// control characters other than newline and tab are removed, and HTML tags
// are stripped while markdown punctuation is kept. Character references
// that decode to control characters are dropped too, since glamour decodes
// entities when it renders.
func Sanitize(s string) string {
	s = dropControlRefs(s)
	if strings.ContainsRune(s, '<') {
		// Unescaping can turn "&#38;#27;" into a fresh reference.
		s = dropControlRefs(html.UnescapeString(policy.Sanitize(s)))
	}

	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func dropControlRefs(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	return controlRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := controlRef.FindStringSubmatch(ref)
		var (
			n   uint64
			err error
		)
		if m[1] != "" {
			n, err = strconv.ParseUint(m[1], 16, 32)
		} else {
			n, err = strconv.ParseUint(m[2], 10, 32)
		}
		if err != nil || n > unicode.MaxRune {
			return ref
		}
		if r := rune(n); r != '\n' && r != '\t' && (r == 0 || unicode.IsControl(r)) {
			return ""
		}
		return ref
	})
}
