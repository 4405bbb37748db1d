package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fafd7"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#5f5f87", Dark: "#8787af"}
	ColorText      = lipgloss.AdaptiveColor{Light: "#1c1c1c", Dark: "#d0d0d0"}
	ColorSubtext   = lipgloss.AdaptiveColor{Light: "#6c6c6c", Dark: "#808080"}
	ColorBgDark    = lipgloss.AdaptiveColor{Light: "#e4e4e4", Dark: "#262626"}
	ColorWarn      = lipgloss.AdaptiveColor{Light: "#af5f00", Dark: "#ffaf5f"}
)

// Theme bundles the chrome styles drawn around the tree.
type Theme struct {
	Renderer *lipgloss.Renderer

	Title  lipgloss.Style
	Status lipgloss.Style
	Warn   lipgloss.Style
	Prompt lipgloss.Style
	Bar    lipgloss.Style
}

// DefaultTheme builds the theme for r, or the default renderer when r is
// nil.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer: r,
		Title:    r.NewStyle().Foreground(ColorPrimary).Bold(true).Padding(0, 1),
		Status:   r.NewStyle().Foreground(ColorSecondary),
		Warn:     r.NewStyle().Foreground(ColorWarn).Bold(true),
		Prompt:   r.NewStyle().Foreground(ColorPrimary),
		Bar:      r.NewStyle().Background(ColorBgDark).Foreground(ColorText),
	}
}
