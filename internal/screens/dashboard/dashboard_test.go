package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/stinglish/stinglish/internal/learner"
	"github.com/stinglish/stinglish/internal/proficiency"
	"github.com/stinglish/stinglish/internal/screen"
)

func newDashboard() *DashboardScreen {
	return New(&learner.Profile{Name: "maria", Level: proficiency.B1})
}

func TestViewGreetsLearner(t *testing.T) {
	view := newDashboard().View(100, 30)
	for _, want := range []string{"Welcome, maria!", "B1 (Intermediate)", "Start Diagnosis", "Logout"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in dashboard view", want)
		}
	}
}

func TestMenuOpensActivities(t *testing.T) {
	tests := []struct {
		key  rune
		want screen.Target
	}{
		{'1', screen.TargetDiagnostic},
		{'2', screen.TargetChat},
		{'3', screen.TargetExercise},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			s := newDashboard()
			_, cmd := s.Update(tea.KeyPressMsg{Code: tt.key, Text: string(tt.key)})
			if cmd == nil {
				t.Fatal("expected command")
			}
			msg, ok := cmd().(screen.OpenMsg)
			if !ok {
				t.Fatalf("expected OpenMsg, got %T", cmd())
			}
			if msg.Target != tt.want {
				t.Errorf("expected target %v, got %v", tt.want, msg.Target)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	s := newDashboard()
	for range 3 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(screen.LogoutMsg); !ok {
		t.Fatalf("expected LogoutMsg, got %T", cmd())
	}
}
