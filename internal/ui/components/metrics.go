// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/util"
)

// Metric is one tile of the metrics grid.
type Metric struct {
	Label string
	Value string
	Hint  string
}

// MetricsGrid lays metrics out in tiles, four per row when wide and two
// when narrow.
type MetricsGrid struct {
	Metrics []Metric
	Width   int
	theme   *styles.Theme
}

// NewMetricsGrid creates an empty grid.
func NewMetricsGrid(theme *styles.Theme) *MetricsGrid {
	return &MetricsGrid{Width: 80, theme: theme}
}

// Columns returns the tile count per row for the current width.
func (g *MetricsGrid) Columns() int {
	if g.Width >= 96 {
		return 4
	}
	return 2
}

// View renders the grid, or nothing when there are no metrics.
func (g *MetricsGrid) View() string {
	if len(g.Metrics) == 0 {
		return ""
	}
	cols := g.Columns()
	tileWidth := g.Width/cols - 2
	if tileWidth < 14 {
		tileWidth = 14
	}
	inner := tileWidth - 4

	tile := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		Width(tileWidth - 2)
	value := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimary)

	var rows []string
	var row []string
	for i, m := range g.Metrics {
		lines := []string{
			g.theme.Muted.Render(strings.ToUpper(util.Truncate(m.Label, inner))),
			value.Render(util.Truncate(m.Value, inner)),
		}
		if m.Hint != "" {
			lines = append(lines, g.theme.Muted.Render(util.Truncate(m.Hint, inner)))
		}
		row = append(row, tile.Render(strings.Join(lines, "\n")))
		if len(row) == cols || i == len(g.Metrics)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
