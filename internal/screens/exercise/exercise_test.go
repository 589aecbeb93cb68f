package exercise

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/stinglish/stinglish/internal/exercise"
	"github.com/stinglish/stinglish/internal/questionbank"
	"github.com/stinglish/stinglish/internal/screen"
)

func key(code rune) tea.KeyPressMsg {
	if code >= ' ' && code <= '~' {
		return tea.KeyPressMsg{Code: code, Text: string(code)}
	}
	return tea.KeyPressMsg{Code: code}
}

// press sends a key and feeds any resulting screen-local message back in.
func press(s *ExerciseScreen, code rune) tea.Msg {
	_, cmd := s.Update(key(code))
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg.(type) {
	case topicChosenMsg, nextMsg, resetMsg:
		s.Update(msg)
	}
	return msg
}

// answerCurrent chooses the correct option, or the first wrong one.
func answerCurrent(t *testing.T, s *ExerciseScreen, correct bool) {
	t.Helper()
	q, ok := s.session.Current()
	if !ok {
		t.Fatal("no current question")
	}
	i := slices.Index(q.Options, q.Answer)
	if !correct {
		i = slices.IndexFunc(q.Options, func(o string) bool { return o != q.Answer })
	}
	press(s, rune('1'+i))
}

func TestTopicListAndStart(t *testing.T) {
	s := New(questionbank.Default(), "")

	view := s.View(100, 30)
	if !strings.Contains(view, "Choose a topic to practice:") || !strings.Contains(view, "Past Simple") {
		t.Fatal("expected topic list")
	}

	// Past Simple is the second topic.
	press(s, tea.KeyDown)
	if msg := press(s, tea.KeyEnter); msg == nil {
		t.Fatal("expected topic to start")
	}
	if s.session.Phase() != exercise.PhaseInProgress || s.session.Topic() != "Past Simple" {
		t.Fatalf("expected Past Simple in progress, got %v %q", s.session.Phase(), s.session.Topic())
	}
	if !strings.Contains(s.View(100, 30), "Question 1 of 5") {
		t.Error("expected question counter")
	}
}

func TestFullRunScoresAndFinishes(t *testing.T) {
	s := New(questionbank.Default(), "Past Simple")

	for i := 0; s.session.Phase() == exercise.PhaseInProgress; i++ {
		answerCurrent(t, s, i%2 == 0)

		view := s.View(100, 40)
		want := exercise.IncorrectMessage
		if i%2 == 0 {
			want = exercise.CorrectMessage
		}
		if !strings.Contains(view, want) {
			t.Fatalf("question %d: expected %q in view", i+1, want)
		}
		if s.session.IsLast() && !strings.Contains(view, "Finish") {
			t.Error("expected Finish on the last question")
		}
		press(s, tea.KeyEnter)
	}

	view := s.View(100, 30)
	if !strings.Contains(view, "Exercise Complete!") {
		t.Fatal("expected completion view")
	}
	if !strings.Contains(view, fmt.Sprintf("Your score: %d / %d", 3, 5)) {
		t.Errorf("expected score 3 / 5 in view")
	}
}

func TestAnswerLocked(t *testing.T) {
	s := New(questionbank.Default(), "Past Simple")
	answerCurrent(t, s, false)

	press(s, '2')
	fb, ok := s.session.Feedback()
	if !ok || fb.Correct {
		t.Fatal("expected the first wrong answer to stay locked")
	}
}

func TestUnansweredQuestionCannotAdvance(t *testing.T) {
	s := New(questionbank.Default(), "Past Simple")

	press(s, 'n')
	s.Update(nextMsg{})
	if s.session.Index() != 0 || s.session.Phase() != exercise.PhaseInProgress {
		t.Fatalf("expected to stay on question 1, got index %d phase %v", s.session.Index(), s.session.Phase())
	}
	if _, answered := s.session.Feedback(); answered {
		t.Fatal("expected no answer recorded")
	}
	if strings.Contains(s.View(100, 40), "Next Question") {
		t.Error("expected no Next Question before answering")
	}
	for _, h := range s.KeyHints() {
		if h.Description == "Skip" {
			t.Error("expected no skip hint")
		}
	}
}

func TestFinishedButtons(t *testing.T) {
	s := New(questionbank.Default(), "Past Simple")
	for s.session.Phase() == exercise.PhaseInProgress {
		answerCurrent(t, s, false)
		press(s, tea.KeyEnter)
	}
	if correct, total := s.session.Score(); correct != 0 || total != 5 {
		t.Errorf("expected 0 / 5, got %d / %d", correct, total)
	}

	press(s, tea.KeyRight)
	if _, ok := press(s, tea.KeyEnter).(screen.HomeMsg); !ok {
		t.Fatal("expected Back to Dashboard to send HomeMsg")
	}

	s.buttons.Focused = 0
	press(s, tea.KeyEnter)
	if s.session.Phase() != exercise.PhaseTopicSelect {
		t.Fatalf("expected topic select after Try another topic, got %v", s.session.Phase())
	}
}

func TestUnknownTopic(t *testing.T) {
	s := New(questionbank.Default(), "Quantum Grammar")

	if s.session.Phase() != exercise.PhaseNoContent {
		t.Fatalf("expected no content, got %v", s.session.Phase())
	}
	view := s.View(120, 30)
	if !strings.Contains(view, "Choose another topic") {
		t.Error("expected recovery button")
	}

	press(s, tea.KeyEnter)
	if s.session.Phase() != exercise.PhaseTopicSelect {
		t.Fatalf("expected topic select, got %v", s.session.Phase())
	}
}
