package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/theme"
)

const titleFull = `████████╗ █████╗ ███╗   ██╗ ██████╗  ██████╗ 
╚══██╔══╝██╔══██╗████╗  ██║██╔════╝ ██╔═══██╗
   ██║   ███████║██╔██╗ ██║██║  ███╗██║   ██║
   ██║   ██╔══██║██║╚██╗██║██║   ██║██║   ██║
   ██║   ██║  ██║██║ ╚████║╚██████╔╝╚██████╔╝
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ `

const titleCompact = "単 語 · T A N G O"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	text := titleFull
	if compact || cw < lipgloss.Width(titleFull) {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text))
}

// renderStatsBar renders the collection summary in a bordered box matching
// content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	cardStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	learnedStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	switch {
	case !st.loaded:
		text = dimStyle.Render("loading…")
	case st.err != "":
		text = lipgloss.NewStyle().Foreground(theme.Error).Render(st.err)
	case compact:
		text = fmt.Sprintf("%s %s %s",
			cardStyle.Render(fmt.Sprintf("▤%d", st.cards)),
			learnedStyle.Render(fmt.Sprintf("✓%d", st.learned)),
			bestText(st, true, quizStyle, dimStyle),
		)
	default:
		text = fmt.Sprintf("%s  %s  %s",
			cardStyle.Render(fmt.Sprintf("▤ %d CARDS", st.cards)),
			learnedStyle.Render(fmt.Sprintf("✓ %d LEARNED", st.learned)),
			bestText(st, false, quizStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func bestText(st stats, compact bool, active, dim lipgloss.Style) string {
	if st.quizzes == 0 {
		if compact {
			return dim.Render("◎–")
		}
		return dim.Render("◎ NO QUIZZES")
	}
	if compact {
		return active.Render(fmt.Sprintf("◎%d/%d", st.bestScore, st.bestOf))
	}
	return active.Render(fmt.Sprintf("◎ BEST %d/%d", st.bestScore, st.bestOf))
}

// renderMenu renders each item as a fixed-width button, or as plain lines
// when the terminal is too short for bordered buttons.
func renderMenu(items []string, selected int, cw int, compact bool) string {
	var lines []string
	for i, label := range items {
		if !compact {
			lines = append(lines, components.MenuButton(label, i == selected, buttonWidth))
			continue
		}
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMNote is shown when no LLM provider is configured.
func renderLLMNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Set an LLM API key to get meaning suggestions (see tango --help)")
}
