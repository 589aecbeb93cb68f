package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/stinglish/stinglish/internal/ui/theme"
)

// MultiChoice is a vertical option picker. Once an option is chosen the
// picker locks; Reveal additionally marks the correct option.
type MultiChoice struct {
	Options []string
	Cursor  int
	Chosen  int
	Correct int
}

// NewMultiChoice creates an unlocked picker over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		Chosen:  -1,
		Correct: -1,
	}
}

// Locked reports whether an option has been chosen.
func (m MultiChoice) Locked() bool {
	return m.Chosen >= 0
}

// Reveal marks the option at index correct as the right answer.
func (m *MultiChoice) Reveal(correct int) {
	m.Correct = correct
}

// Update moves the cursor with up/down and chooses with enter or the
// option's number key.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked() {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.Chosen = m.Cursor
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Cursor = i
				m.Chosen = i
			}
		}
	}
	return m, nil
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Locked() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case !m.Locked() && i == m.Cursor:
			line = theme.Selected.Render(line)
		case !m.Locked():
			line = theme.Unselected.Render(line)
		case m.Correct >= 0 && i == m.Correct:
			line = theme.Correct.Render(line + "  ✓")
		case m.Correct >= 0 && i == m.Chosen:
			line = theme.Incorrect.Render(line + "  ✗")
		case i == m.Chosen:
			line = theme.Selected.Render(line)
		default:
			line = theme.Hint.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
