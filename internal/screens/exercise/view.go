package exercise

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/stinglish/stinglish/internal/exercise"
	"github.com/stinglish/stinglish/internal/ui/theme"
)

func (s *ExerciseScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	inner := min(max(width-8, 20), 72)

	var b strings.Builder
	b.WriteString("\n")

	switch s.session.Phase() {
	case exercise.PhaseTopicSelect:
		b.WriteString(center.Render(theme.Title.Render("Grammar & Vocabulary Exercises")))
		b.WriteString("\n")
		b.WriteString(center.Render(theme.Subtitle.Render("Choose a topic to practice:")))
		b.WriteString("\n\n")
		b.WriteString(center.Render(theme.Card.Width(min(inner, 48)).Render(strings.TrimRight(s.topics.View(), "\n"))))

	case exercise.PhaseNoContent:
		b.WriteString(center.Render(theme.ErrorBox.Width(inner).Render(exercise.NoContentMessage(s.session.Topic()))))
		b.WriteString("\n\n")
		b.WriteString(center.Render(s.buttons.View()))

	case exercise.PhaseInProgress:
		b.WriteString(s.renderQuestion(center, inner))

	case exercise.PhaseFinished:
		correct, total := s.session.Score()
		b.WriteString(center.Render(theme.Title.Render("Exercise Complete!")))
		b.WriteString("\n")
		b.WriteString(center.Render(theme.Subtitle.Render(s.session.Topic())))
		b.WriteString("\n\n")
		b.WriteString(center.Render(theme.Label.Render(fmt.Sprintf("Your score: %d / %d", correct, total))))
		b.WriteString("\n\n")
		b.WriteString(center.Render(s.buttons.View()))
	}
	return b.String()
}

func (s *ExerciseScreen) renderQuestion(center lipgloss.Style, inner int) string {
	q, _ := s.session.Current()

	var b strings.Builder
	b.WriteString(center.Render(theme.Title.Render(s.session.Topic())))
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Hint.Render(
		fmt.Sprintf("Question %d of %d", s.session.Index()+1, s.session.Total()))))
	b.WriteString("\n\n")
	b.WriteString(center.Render(lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(lipgloss.NewStyle().Width(inner).Render(strings.TrimRight(s.choices.View(), "\n"))))

	fb, answered := s.session.Feedback()
	if !answered {
		return b.String()
	}

	headline := theme.Incorrect.Render(fb.Message())
	if fb.Correct {
		headline = theme.Correct.Render(fb.Message())
	}
	panel := headline
	if !fb.Correct {
		panel += "\n" + theme.Body.Render("Correct answer: "+fb.Answer)
	}
	if fb.Explanation != "" {
		panel += "\n\n" + theme.Hint.Render(fb.Explanation)
	}

	b.WriteString("\n\n")
	b.WriteString(center.Render(theme.Card.Width(inner).Render(panel)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(s.buttons.View()))
	return b.String()
}
