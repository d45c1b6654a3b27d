package tui

import (
	"github.com/charmbracelet/lipgloss"
)

type buttonVariant int

const (
	buttonPrimary buttonVariant = iota
	buttonSecondary
	buttonOutline
)

var (
	colorBlue   = lipgloss.Color("#2563EB")
	colorPurple = lipgloss.Color("#9333EA")
	colorWhite  = lipgloss.Color("#FFFFFF")
	colorMuted  = lipgloss.Color("#6B7280")

	buttonBase = lipgloss.NewStyle().Padding(0, 3).Bold(true)

	buttonStyles = map[buttonVariant]lipgloss.Style{
		buttonPrimary:   buttonBase.Foreground(colorWhite).Background(colorBlue),
		buttonSecondary: buttonBase.Foreground(colorWhite).Background(colorPurple),
		buttonOutline: buttonBase.Padding(0, 2).Foreground(colorBlue).
			Border(lipgloss.RoundedBorder()).BorderForeground(colorBlue),
	}

	buttonDisabled = lipgloss.NewStyle().Faint(true)
)

// button is the presentational button shared by every screen. A loading
// button shows loadingLabel and is never interactive.
type button struct {
	label        string
	loadingLabel string
	variant      buttonVariant
	loading      bool
	disabled     bool
}

func (b button) interactive() bool {
	return !b.loading && !b.disabled
}

func (b button) View() string {
	text := b.label
	if b.loading && b.loadingLabel != "" {
		text = b.loadingLabel
	}

	s := buttonStyles[b.variant].Render(text)
	if !b.interactive() {
		return buttonDisabled.Render(s)
	}
	return s
}
