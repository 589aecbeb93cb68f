package components

import (
	"fmt"
	"strings"

	"github.com/stinglish/stinglish/internal/ui/theme"
)

// ProgressBar shows how far through a question set the learner is, e.g.
// "QUESTION 3 / 10" followed by a bar.
type ProgressBar struct {
	Label   string
	Current int
	Total   int
	Width   int
}

// NewProgressBar creates a progress bar for question current of total.
func NewProgressBar(label string, current, total, width int) ProgressBar {
	return ProgressBar{Label: label, Current: current, Total: total, Width: width}
}

// Fraction returns Current/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	return max(0, min(1, f))
}

// View renders the label line and the bar.
func (p ProgressBar) View() string {
	counter := fmt.Sprintf("%s %d / %d", p.Label, p.Current, p.Total)
	head := theme.Label.Render(strings.TrimSpace(counter))

	barWidth := max(p.Width, 4)
	filled := int(float64(barWidth) * p.Fraction())
	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return head + "\n" + bar
}
