package quiz

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/quiz"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/theme"
)

// warnSeconds is when the timer bar turns red.
const warnSeconds = 10

func (s *QuizScreen) View(width, height int) string {
	if s.loadErr != "" {
		return components.Message(s.loadErr, true, width, height)
	}

	switch s.engine.State() {
	case quiz.Running:
		return s.renderRunning(width, height)
	case quiz.Finished:
		return s.renderFinished(width, height)
	}
	if !s.loaded {
		return components.Message("Loading cards...", false, width, height)
	}
	return s.renderSetup(width, height)
}

func (s *QuizScreen) renderSetup(width, height int) string {
	cw := components.ContentWidth(width)

	if len(s.pool) < quiz.MinPool {
		return components.Centered(components.Panel(theme.Incorrect.Render(s.setupErr), cw), width, height)
	}

	row := func(label string, value string, focused bool) string {
		labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
		valueStyle := theme.Unselected
		if focused {
			labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
			valueStyle = theme.Selected
		}
		return labelStyle.Render(label) + valueStyle.Render("◂ "+value+" ▸")
	}

	body := theme.Title.Render("New quiz") + "\n\n" +
		row("Questions", fmt.Sprintf("%d of %d", s.count, len(s.pool)), s.setupField == fieldCount) + "\n" +
		row("Minutes", fmt.Sprintf("%d", s.minutes), s.setupField == fieldMinutes) + "\n\n" +
		components.Button("Start", true)

	if s.setupErr != "" {
		body += "\n\n" + theme.Incorrect.Render(s.setupErr)
	}
	return components.Centered(components.Panel(body, cw), width, height)
}

func (s *QuizScreen) renderRunning(width, height int) string {
	cw := components.ContentWidth(width)
	q, _ := s.engine.Current()

	total := len(s.engine.Questions())
	remaining := s.engine.RemainingSeconds()
	status := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Question %d/%d   Score %d   ⏱ %s",
			s.engine.CurrentIndex()+1, total, s.engine.Score(), clock(remaining)))

	timer := components.NewGauge(float64(remaining)/float64(s.engine.DurationMinutes()*60), cw)
	timer.Warn = remaining <= warnSeconds

	direction := "Choose the meaning"
	if !q.PromptIsSourceLanguage {
		direction = "Choose the term"
	}

	body := theme.Hint.Render(direction) + "\n\n" +
		lipgloss.NewStyle().Width(cw-8).Render(s.choice.View())

	content := status + "\n" + timer.View() + "\n\n" + components.Panel(body, cw)
	return components.Centered(content, width, height)
}

func (s *QuizScreen) renderFinished(width, height int) string {
	cw := components.ContentWidth(width)
	total := len(s.engine.Questions())
	score := s.engine.Score()

	heading := theme.Correct.Render("Quiz complete!")
	if s.engine.Reason() == quiz.TimedOut {
		heading = theme.Incorrect.Render("Time's up!")
	}

	pct := 0
	if total > 0 {
		pct = score * 100 / total
	}
	body := heading + "\n\n" +
		theme.Term.Render(fmt.Sprintf("%d / %d", score, total)) + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("%d%% correct", pct)) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("Answered %d of %d in %s", s.engine.CurrentIndex(), total, clock(s.engine.ElapsedSeconds())))

	if s.recordErr != "" {
		body += "\n\n" + theme.Incorrect.Render(s.recordErr)
	}
	body += "\n\n" + theme.Hint.Render("Press Enter for a new quiz")

	return components.Centered(components.Panel(body, cw), width, height)
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
