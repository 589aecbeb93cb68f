// Package login is the username and password form shown after the splash.
package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/stinglish/stinglish/internal/learner"
	"github.com/stinglish/stinglish/internal/screen"
	"github.com/stinglish/stinglish/internal/ui/components"
	"github.com/stinglish/stinglish/internal/ui/layout"
	"github.com/stinglish/stinglish/internal/ui/theme"
)

const (
	focusUsername = iota
	focusPassword
	focusSubmit
	focusCount
)

// LoginScreen collects a username and password. Any non-blank pair is
// accepted.
type LoginScreen struct {
	username components.TextInput
	password components.TextInput
	focus    int
	errMsg   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)
var _ screen.InputCapturer = (*LoginScreen)(nil)

// New creates a LoginScreen with the username field focused.
func New() *LoginScreen {
	return &LoginScreen{
		username: components.NewTextInput("Username", "Enter your username", 64),
		password: components.NewPasswordInput("Password", "Enter your password"),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.username.Init()
}

func (s *LoginScreen) Title() string {
	return "Login"
}

func (s *LoginScreen) CapturesInput() bool {
	return s.focus != focusSubmit
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start Learning"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % focusCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
		case "enter":
			if s.focus == focusUsername && s.password.Value() == "" {
				return s, s.setFocus(focusPassword)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusUsername:
		s.username, cmd = s.username.Update(msg)
	case focusPassword:
		s.password, cmd = s.password.Update(msg)
	}
	if _, ok := msg.(tea.KeyPressMsg); ok {
		s.errMsg = ""
	}
	return s, cmd
}

func (s *LoginScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.username.Blur()
	s.password.Blur()
	switch f {
	case focusUsername:
		return s.username.Focus()
	case focusPassword:
		return s.password.Focus()
	}
	return nil
}

func (s *LoginScreen) submit() tea.Cmd {
	profile, err := learner.Login(s.username.Value(), s.password.Value())
	if err != nil {
		s.errMsg = learner.MissingCredentialsMessage
		return nil
	}
	s.errMsg = ""
	return func() tea.Msg { return screen.LoginMsg{Profile: profile} }
}

func (s *LoginScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Title.Render("Welcome to Stinglish")))
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Subtitle.Render("Log in to start learning")))
	b.WriteString("\n\n")

	form := s.username.View() + "\n\n" + s.password.View()
	b.WriteString(center.Render(theme.Card.Width(44).Render(form)))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(center.Render(theme.ErrorBox.Render(s.errMsg)))
		b.WriteString("\n\n")
	}

	button := theme.ButtonInactive.Render("Start Learning")
	if s.focus == focusSubmit {
		button = theme.ButtonActive.Render("▸ Start Learning")
	}
	b.WriteString(center.Render(button))

	return b.String()
}
