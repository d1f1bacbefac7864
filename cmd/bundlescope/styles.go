package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
)

// styles holds the lipgloss styles of the CLI's tabular output.
type styles struct {
	Header  lipgloss.Style
	Key     lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Key:     lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Success: lipgloss.NewStyle().Foreground(colorSuccess),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Error:   lipgloss.NewStyle().Foreground(colorError),
	}
}

// table renders rows in aligned columns. Cells may already be styled;
// widths are measured with lipgloss so escape sequences do not count.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(st styles) string {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			text := cell
			if style != nil {
				text = style.Render(cell)
			}
			b.WriteString(text)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
			}
		}
		b.WriteByte('\n')
	}

	writeRow(t.header, &st.Header)
	for _, row := range t.rows {
		writeRow(row, nil)
	}
	return b.String()
}

// yesNo renders a boolean cell.
func yesNo(st styles, v bool) string {
	if v {
		return st.Success.Render("yes")
	}
	return st.Muted.Render("no")
}
