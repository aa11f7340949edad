// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain markdown untouched", "**bold** and _em_\n\n- item", "**bold** and _em_\n\n- item"},
		{"ansi colors", "\x1b[31mred\x1b[0m text", "red text"},
		{"osc title", "\x1b]0;pwned\x07hello", "hello"},
		{"control chars", "a\x00b\x08c\td", "abc\td"},
		{"crlf", "one\r\ntwo", "one\ntwo"},
		{"html tags", "<b>bold</b> <i>it</i>", "bold it"},
		{"script body", "<script>alert(1)</script>safe", "safe"},
		{"quote survives", "> quoted & <em>kept</em>", "> quoted & kept"},
		{"lone less-than", "a < b", "a < b"},
		{"entity escapes with tags", "<b>hi</b> &#27;]0;pwned&#7; &#27;[2Jcleared", "hi ]0;pwned [2Jcleared"},
		{"entity escapes without tags", "&#x1b;[31mred &#X1B;[0m", "[31mred [0m"},
		{"c1 csi reference", "a&#155;2Jb", "a2Jb"},
		{"reference without semicolon", "a&#27[2Jb", "a[2Jb"},
		{"double encoded under tags", "<i>x</i>&#38;#27;[2J", "x[2J"},
		{"printable references kept", "Tom &#38; Jerry &#x263A;", "Tom &#38; Jerry &#x263A;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestRender_NoTTY(t *testing.T) {
	r := New(StyleNoTTY, 60)
	out := r.Render("## Executive Summary\n\n**Recommendation:** Greenlight a pilot.")

	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "Greenlight a pilot.")
}

func TestRender_StripsInjectedEscapes(t *testing.T) {
	r := New(StyleNoTTY, 60)
	out := r.Render("hello \x1b[2Jworld <img src=x onerror=alert(1)>")

	assert.NotContains(t, out, "\x1b[2J")
	assert.NotContains(t, out, "onerror")
	assert.Contains(t, out, "world")

	out = r.Render("no tags &#27;[2Jcleared &#x1B;]0;title&#7; done")
	assert.NotContains(t, out, "\x1b[2J")
	assert.NotContains(t, out, "\x1b]0")
	assert.NotContains(t, out, "\a")
	assert.Contains(t, out, "cleared")
	assert.Contains(t, out, "done")
}

func TestRender_Empty(t *testing.T) {
	r := New(StyleNoTTY, 60)
	assert.Equal(t, "", strings.TrimSpace(r.Render("")))
}

func TestRenderer_Configure(t *testing.T) {
	r := New("", 0)
	assert.Equal(t, StyleAuto, r.Style())
	assert.Equal(t, DefaultWidth, r.Width())

	r.SetStyle("NEON")
	assert.Equal(t, StyleNoTTY, r.Style())

	r.SetWidth(120)
	assert.Equal(t, 120, r.Width())
	r.SetStyle(StyleDark)
	assert.Equal(t, 120, r.Width())
}
