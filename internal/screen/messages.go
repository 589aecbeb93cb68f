package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/stinglish/stinglish/internal/learner"
)

// Target names one of the dashboard's activities.
type Target int

const (
	TargetDiagnostic Target = iota + 1
	TargetChat
	TargetExercise
)

func (t Target) String() string {
	switch t {
	case TargetDiagnostic:
		return "diagnostic"
	case TargetChat:
		return "chat"
	case TargetExercise:
		return "exercise"
	default:
		return "unknown"
	}
}

// OpenMsg asks the app to open an activity. Topic preselects an exercise
// topic. Replace swaps the current screen instead of pushing.
type OpenMsg struct {
	Target  Target
	Topic   string
	Replace bool
}

// LoginMsg reports a successful login.
type LoginMsg struct {
	Profile *learner.Profile
}

// LogoutMsg asks the app to forget the learner and return to login.
type LogoutMsg struct{}

// HomeMsg asks the app to return to the dashboard.
type HomeMsg struct{}

// Open returns a command that emits OpenMsg for target.
func Open(target Target) tea.Cmd {
	return func() tea.Msg { return OpenMsg{Target: target} }
}

// Home returns a command that emits HomeMsg.
func Home() tea.Cmd {
	return func() tea.Msg { return HomeMsg{} }
}

// Logout returns a command that emits LogoutMsg.
func Logout() tea.Cmd {
	return func() tea.Msg { return LogoutMsg{} }
}
