// Package dashboard is the hub the learner returns to between activities.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/stinglish/stinglish/internal/learner"
	"github.com/stinglish/stinglish/internal/screen"
	"github.com/stinglish/stinglish/internal/ui/components"
	"github.com/stinglish/stinglish/internal/ui/layout"
	"github.com/stinglish/stinglish/internal/ui/theme"
)

// Intro is shown under the greeting.
const Intro = "I'm Stinglish, ready to help you improve your English. What would you like to do today?"

// DashboardScreen offers the three activities and logout.
type DashboardScreen struct {
	profile *learner.Profile
	menu    components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen for profile.
func New(profile *learner.Profile) *DashboardScreen {
	items := []components.MenuItem{
		{
			Label:       "Start Diagnosis",
			Description: "Take a short test to find your English level.",
			Action:      func() tea.Cmd { return screen.Open(screen.TargetDiagnostic) },
		},
		{
			Label:       "Conversational Practice",
			Description: "Chat with your AI tutor and get instant corrections.",
			Action:      func() tea.Cmd { return screen.Open(screen.TargetChat) },
		},
		{
			Label:       "Grammar/Vocabulary",
			Description: "Practice a topic with focused multiple-choice exercises.",
			Action:      func() tea.Cmd { return screen.Open(screen.TargetExercise) },
		},
		{
			Label:       "Logout",
			Description: "Sign out and return to the login screen.",
			Action:      screen.Logout,
		},
	}
	return &DashboardScreen{
		profile: profile,
		menu:    components.NewMenu(items),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-4", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DashboardScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Title.Render(fmt.Sprintf("Welcome, %s!", s.profile.Name))))
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Subtitle.Render(Intro)))
	b.WriteString("\n\n")

	level := theme.Hint.Render("Current level: ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(s.profile.LevelLabel())
	b.WriteString(center.Render(level))
	b.WriteString("\n\n")

	menu := theme.Card.Width(min(64, max(width-4, 20))).Render(strings.TrimRight(s.menu.View(), "\n"))
	b.WriteString(center.Render(menu))

	return b.String()
}
