package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/stinglish/stinglish/internal/chat"
	"github.com/stinglish/stinglish/internal/ui/theme"
)

// inputHeight is the rows reserved below the log for the status line and
// the bordered input.
const inputHeight = 5

func (s *ChatScreen) View(width, height int) string {
	if s.session == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("\n\n" + s.spinner.View() + " " + theme.Hint.Render("Connecting to your tutor..."))
	}

	logWidth := max(width-4, 20)
	s.viewport.SetWidth(logWidth)
	s.viewport.SetHeight(max(height-inputHeight, 3))
	s.viewport.SetContent(renderMessages(s.session.Messages(), s.profile.Initial(), logWidth))
	if s.follow {
		s.viewport.GotoBottom()
	}

	status := ""
	if s.waiting && lastIsUser(s.session.Messages()) {
		status = s.spinner.View() + " " + theme.Hint.Render("Stinglish is typing...")
	}

	var field string
	if s.session.Disabled() {
		field = theme.Disabled.Render(chat.Placeholder + "  (chat unavailable)")
	} else {
		field = s.input.View()
	}
	inputBox := lipgloss.NewStyle().
		Width(logWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(field)

	pad := lipgloss.NewStyle().PaddingLeft(2)
	return pad.Render(s.viewport.View()) + "\n" + pad.Render(status) + "\n" + pad.Render(inputBox)
}

func lastIsUser(msgs []chat.Message) bool {
	return len(msgs) > 0 && msgs[len(msgs)-1].Role == chat.RoleUser
}

// renderMessages lays out the log: learner messages on the right next to
// their avatar, tutor replies on the left and system notices across the
// full width.
func renderMessages(msgs []chat.Message, initial string, width int) string {
	bubbleMax := max(width*3/4, 10)
	avatar := theme.Avatar.Render(initial)
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case chat.RoleUser:
			parts = append(parts, lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Right).
				Render(lipgloss.JoinHorizontal(lipgloss.Top,
					bubble(theme.UserBubble, m.Text, bubbleMax-lipgloss.Width(avatar)-1), " ", avatar)))
		case chat.RoleModel:
			name := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Stinglish")
			parts = append(parts, name+"\n"+bubble(theme.ModelBubble, m.Text, bubbleMax))
		default:
			parts = append(parts, theme.SystemBubble.Width(width).Render(m.Text))
		}
	}
	return strings.Join(parts, "\n\n")
}

// bubble renders text in style, wrapping at maxWidth.
func bubble(style lipgloss.Style, text string, maxWidth int) string {
	w := min(lipgloss.Width(text)+style.GetHorizontalFrameSize(), maxWidth)
	return style.Width(w).Render(text)
}
