// Package layout draws the frame around every screen: a header bar with the
// collection summary, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Rendered heights of the header and footer bars, borders included.
	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

const brand = "単語 Tango"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool { return width < CompactWidthThreshold }
func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether the terminal cannot fit the frame at all.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a request to resize.
func RenderMinSizeMessage(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand),
		"",
		theme.Body.Render(fmt.Sprintf("The window is %d×%d.", width, height)),
		theme.Hint.Render(fmt.Sprintf("Make it at least %d×%d to continue.", MinWidth, MinHeight)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// bar is the bordered strip used for both header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows the brand on the left, the screen title centred and
// the collection counts on the right. The learned count is dropped on
// narrow terminals.
func RenderHeader(title string, cardCount, learned int, width int) string {
	left := "  " + lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := theme.Body.Render(title)

	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("▤ %d cards", cardCount))
	if !IsCompactWidth(width) {
		right += "   " + lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d learned", learned))
	}

	// Two columns go to the border and two to padding.
	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)

	return bar(left+strings.Repeat(" ", gapL)+center+strings.Repeat(" ", gapR)+right, width)
}

// RenderFooter lists the key hints separated by wide gaps.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return bar(b.String(), width)
}

// RenderFrame stacks header, content and footer, sizing the content to
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
