package chat

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/stinglish/stinglish/internal/chat"
	"github.com/stinglish/stinglish/internal/learner"
	"github.com/stinglish/stinglish/internal/llm"
	"github.com/stinglish/stinglish/internal/tutor"
)

var maria = &learner.Profile{Name: "Maria"}

// runBatch executes cmd and returns the messages it produced, unpacking
// one level of batching.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

func readyScreen(t *testing.T, client *tutor.Client) *ChatScreen {
	t.Helper()
	s := New(context.Background(), client, maria, chat.ResponderFor(true))
	t.Cleanup(s.Close)

	for _, msg := range runBatch(s.Init()) {
		if ready, ok := msg.(sessionReadyMsg); ok {
			s.Update(ready)
			return s
		}
	}
	t.Fatal("Init did not produce sessionReadyMsg")
	return nil
}

func typeText(s *ChatScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestGreetingShown(t *testing.T) {
	s := readyScreen(t, tutor.FromProvider(llm.NewMockProvider()))

	if !s.CapturesInput() {
		t.Fatal("expected input enabled")
	}
	if !strings.Contains(s.View(100, 30), "Hello Maria!") {
		t.Error("expected greeting in view")
	}
}

func TestSendStreamsReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.StreamResponse("Great", " job!"))
	s := readyScreen(t, tutor.FromProvider(mock))

	typeText(s, "I goed home")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil || !s.waiting {
		t.Fatal("expected reply to start")
	}
	if s.input.Value() != "" {
		t.Error("expected input cleared after send")
	}

	// Input is disabled while the reply is outstanding.
	if s.input.Focused() {
		t.Error("expected input blurred while waiting")
	}
	typeText(s, "again")
	if s.input.Value() != "" {
		t.Errorf("expected keystrokes ignored while waiting, got %q", s.input.Value())
	}
	if _, again := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); again != nil {
		t.Error("expected no second send while waiting")
	}

	var done *replyDoneMsg
	for _, msg := range runBatch(cmd) {
		switch msg := msg.(type) {
		case replyDoneMsg:
			done = &msg
		case chunkMsg:
			if next := waitForChunk(s.updates); next == nil || next() != nil {
				t.Error("expected the drained channel to stop the waiter")
			}
		}
	}
	if done == nil {
		t.Fatal("expected replyDoneMsg")
	}
	if done.Err != nil {
		t.Fatalf("unexpected error: %v", done.Err)
	}
	s.Update(*done)

	msgs := s.session.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[1].Role != chat.RoleUser || msgs[1].Text != "I goed home" {
		t.Errorf("unexpected user message %+v", msgs[1])
	}
	if msgs[2].Text != "Great job!" {
		t.Errorf("unexpected reply %q", msgs[2].Text)
	}
	if s.waiting {
		t.Error("expected waiting cleared")
	}
	if !strings.Contains(s.View(100, 30), "Great job!") {
		t.Error("expected reply in view")
	}
	if !s.input.Focused() {
		t.Error("expected input refocused after the reply")
	}
}

func TestLearnerAvatarShown(t *testing.T) {
	out := renderMessages([]chat.Message{
		{Role: chat.RoleModel, Text: "Hi!"},
		{Role: chat.RoleUser, Text: "Hello"},
	}, maria.Initial(), 60)

	lines := strings.Split(out, "\n")
	last := lines[len(lines)-1]
	hello, avatar := strings.Index(last, "Hello"), strings.LastIndex(last, "M")
	if hello < 0 || avatar < hello {
		t.Errorf("expected avatar after the learner bubble, got %q", last)
	}
}

func TestMissingCredentialDisablesInput(t *testing.T) {
	client := tutor.New(func(context.Context) (llm.Provider, error) {
		return nil, &llm.ErrMissingCredential{Provider: "gemini", EnvVar: "GEMINI_API_KEY"}
	})
	s := readyScreen(t, client)

	if s.CapturesInput() {
		t.Fatal("expected input disabled")
	}
	typeText(s, "hello")
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no send when disabled")
	}
	view := s.View(120, 30)
	if !strings.Contains(view, "GEMINI_API_KEY") {
		t.Error("expected configuration guidance in view")
	}
	if !strings.Contains(view, "chat unavailable") {
		t.Error("expected disabled input hint")
	}
}

func TestBlankInputIgnored(t *testing.T) {
	s := readyScreen(t, tutor.FromProvider(llm.NewMockProvider()))

	typeText(s, "   ")
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected blank input to be ignored")
	}
	if s.waiting {
		t.Error("expected not waiting")
	}
}

func TestCloseCancelsContext(t *testing.T) {
	s := New(context.Background(), tutor.FromProvider(llm.NewMockProvider()), maria, chat.ResponderFor(false))
	s.Close()
	if s.ctx.Err() == nil {
		t.Error("expected context cancelled")
	}
}
