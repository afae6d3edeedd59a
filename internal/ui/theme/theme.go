// Package theme holds the palette and shared text styles: sumi ink on dark
// paper with vermilion and indigo accents.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#E4572E") // vermilion
	Secondary = lipgloss.Color("#4C6EF5") // indigo
	Accent    = lipgloss.Color("#F2C14E") // gold leaf
	Info      = lipgloss.Color("#5FB3B3") // celadon
	Success   = lipgloss.Color("#7BC96F") // matcha
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F5F1E8") // washi
	TextDim   = lipgloss.Color("#A8A29E")
	BgDark    = lipgloss.Color("#1C1917") // sumi
	BgCard    = lipgloss.Color("#292524")
	Border    = lipgloss.Color("#44403C")
)

var (
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)

	// Term is a vocabulary term, usually the focus of a screen.
	Term = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = Body
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)

	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(Text).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Background(BgCard).Foreground(TextDim).Padding(0, 2)
)
