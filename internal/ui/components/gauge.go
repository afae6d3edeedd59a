package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/theme"
)

// Gauge is a solid horizontal bar, used for the quiz countdown.
type Gauge struct {
	// Fraction filled, clamped to [0, 1] when drawn.
	Fraction float64
	Width    int

	// Warn draws the filled part in the error color.
	Warn bool
}

func NewGauge(fraction float64, width int) Gauge {
	return Gauge{Fraction: fraction, Width: width}
}

// Filled is the number of cells drawn in the fill color.
func (g Gauge) Filled() int {
	w := max(g.Width, 4)
	f := min(max(g.Fraction, 0), 1)
	return int(float64(w)*f + 0.5)
}

func (g Gauge) View() string {
	w := max(g.Width, 4)
	n := g.Filled()

	fill := theme.Secondary
	if g.Warn {
		fill = theme.Error
	}
	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", n)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", w-n))
}
