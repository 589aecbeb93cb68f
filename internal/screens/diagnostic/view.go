package diagnostic

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	diag "github.com/stinglish/stinglish/internal/diagnostic"
	"github.com/stinglish/stinglish/internal/questionbank"
	"github.com/stinglish/stinglish/internal/ui/components"
	"github.com/stinglish/stinglish/internal/ui/theme"
)

func (s *DiagnosticScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	switch s.engine.Phase() {
	case diag.PhaseLoading:
		return renderCentered(width, theme.Hint.Render("Preparing your test..."))
	case diag.PhaseInProgress:
		return s.renderQuestion(width)
	default:
		return s.renderResult(width)
	}
}

func renderCentered(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + content)
}

func renderError(width int, msg string) string {
	return renderCentered(width, theme.ErrorBox.Render(msg)+"\n\n"+theme.Hint.Render("Press Esc to go back"))
}

// kindLabel turns "fill-in-the-blank" into "FILL IN THE BLANK".
func kindLabel(k questionbank.Kind) string {
	return strings.ToUpper(strings.ReplaceAll(string(k), "-", " "))
}

func (s *DiagnosticScreen) renderQuestion(width int) string {
	q := s.engine.Current()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	inner := min(max(width-8, 20), 72)

	var b strings.Builder
	b.WriteString("\n")
	progress := components.NewProgressBar("QUESTION", s.engine.Index()+1, s.engine.Total(), inner)
	b.WriteString(center.Render(progress.View()))
	b.WriteString("\n\n")

	b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.Accent).Render(kindLabel(q.Kind()))))
	b.WriteString("\n")
	b.WriteString(center.Render(lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text())))
	b.WriteString("\n\n")

	var body string
	switch q := q.(type) {
	case *questionbank.MultipleChoice:
		body = strings.TrimRight(s.choices.View(), "\n")
	case *questionbank.FillInBlank:
		body = s.input.View()
		if s.engine.Pending() == nil && !diag.CanSubmitText(s.input.Value()) {
			body += "\n\n" + theme.Disabled.Render("Submit")
		} else if s.engine.Pending() == nil {
			body += "\n\n" + theme.ButtonActive.Render("Submit")
		}
	case *questionbank.OrderSentence:
		body = s.renderWordBank(q, inner)
	}
	b.WriteString(center.Render(lipgloss.NewStyle().Width(inner).Render(body)))

	if s.engine.Pending() != nil {
		b.WriteString("\n\n")
		b.WriteString(center.Render(theme.Hint.Render("Answer recorded")))
	}
	return b.String()
}

func (s *DiagnosticScreen) renderWordBank(q *questionbank.OrderSentence, width int) string {
	words := s.engine.WordBank()

	sentence := theme.Hint.Render("Pick the words below to build the sentence.")
	if placed := words.Placed(); len(placed) > 0 {
		sentence = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(strings.Join(placed, " "))
	}
	answerBox := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(sentence)

	chips := make([]string, len(q.Words))
	for i, w := range q.Words {
		label := fmt.Sprintf("%d %s", i+1, w)
		switch {
		case words.Used(i):
			chips[i] = theme.ChipUsed.Render(label)
		case i == s.chipCursor:
			chips[i] = theme.ButtonActive.Padding(0, 1).Render(label)
		default:
			chips[i] = theme.Chip.Render(label)
		}
	}
	chipRow := lipgloss.NewStyle().Width(width).Render(strings.Join(chips, " "))

	submit := theme.Disabled.Render("Submit")
	if words.CanSubmit() {
		submit = theme.ButtonActive.Render("Submit")
	}
	return answerBox + "\n\n" + chipRow + "\n\n" + submit
}

func (s *DiagnosticScreen) renderResult(width int) string {
	res := s.engine.Result()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Title.Render("Test Complete!")))
	b.WriteString("\n\n")
	b.WriteString(center.Render(theme.Body.Render(
		fmt.Sprintf("You answered %d out of %d questions correctly.", res.Score, res.Total))))
	b.WriteString("\n\n")
	b.WriteString(center.Render(
		theme.Label.Render("Level: ") +
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(res.Level.Label())))
	b.WriteString("\n\n")

	if s.analyzing {
		b.WriteString(center.Render(s.spinner.View() + " " + theme.Hint.Render("AI is analyzing your results...")))
		return b.String()
	}

	if res.Topic != "" {
		rec := theme.Label.Render("AI Recommendation") + "\n" +
			theme.Body.Render("Focus your practice on:") + "\n" +
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(res.Topic)
		b.WriteString(center.Render(theme.Card.Render(rec)))
		b.WriteString("\n\n")
	}
	b.WriteString(center.Render(s.buttons.View()))
	return b.String()
}
