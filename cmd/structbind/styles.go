package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	title    lipgloss.Style
	name     lipgloss.Style
	kind     lipgloss.Style
	selected lipgloss.Style
	result   lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
}

// newStyles builds the palette for output written to w. mode is the
// configured color setting; auto follows w's terminal capabilities.
func newStyles(w io.Writer, mode string) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "on":
		r.SetColorProfile(termenv.TrueColor)
	case "off":
		r.SetColorProfile(termenv.Ascii)
	}

	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		name:     r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		kind:     r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		selected: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")),
		result:   r.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		err:      r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help:     r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}
