// Package chat is the conversational practice screen.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/stinglish/stinglish/internal/chat"
	"github.com/stinglish/stinglish/internal/learner"
	"github.com/stinglish/stinglish/internal/screen"
	"github.com/stinglish/stinglish/internal/tutor"
	"github.com/stinglish/stinglish/internal/ui/components"
	"github.com/stinglish/stinglish/internal/ui/layout"
	"github.com/stinglish/stinglish/internal/ui/theme"
)

// ChatScreen is a free conversation with the AI tutor.
type ChatScreen struct {
	ctx    context.Context
	cancel context.CancelFunc

	client    *tutor.Client
	profile   *learner.Profile
	responder chat.Responder

	session  *chat.Session
	waiting  bool
	updates  chan struct{}
	follow   bool
	viewport viewport.Model
	input    components.TextInput
	spinner  spinner.Model
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.InputCapturer = (*ChatScreen)(nil)
var _ screen.Closer = (*ChatScreen)(nil)

// New creates a ChatScreen. The conversation is started by Init.
func New(ctx context.Context, client *tutor.Client, profile *learner.Profile, responder chat.Responder) *ChatScreen {
	ctx, cancel := context.WithCancel(ctx)
	return &ChatScreen{
		ctx:       ctx,
		cancel:    cancel,
		client:    client,
		profile:   profile,
		responder: responder,
		follow:    true,
		viewport:  viewport.New(viewport.WithWidth(80), viewport.WithHeight(10)),
		input:     components.NewTextInput("", chat.Placeholder, 500),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	ctx, client, profile, responder := s.ctx, s.client, s.profile, s.responder
	return tea.Batch(
		s.input.Init(),
		s.spinner.Tick,
		func() tea.Msg {
			return sessionReadyMsg{Session: chat.New(ctx, client, profile, chat.WithResponder(responder))}
		},
	)
}

func (s *ChatScreen) Title() string {
	return "Conversational Practice"
}

// Close cancels the reply in flight, if any.
func (s *ChatScreen) Close() {
	s.cancel()
}

func (s *ChatScreen) CapturesInput() bool {
	return s.session != nil && !s.session.Disabled()
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	if !s.CapturesInput() {
		return []layout.KeyHint{
			{Key: "PgUp/PgDn", Description: "Scroll"},
			{Key: "Esc", Description: "Dashboard"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		s.session = msg.Session
		if s.session.Disabled() {
			s.input.Blur()
		}
		return s, nil

	case chunkMsg:
		s.follow = true
		return s, waitForChunk(s.updates)

	case replyDoneMsg:
		s.waiting = false
		s.follow = true
		if msg.Err != nil {
			slog.Warn("chat reply failed", "conversation_id", s.session.ConversationID(), "error", msg.Err)
		}
		return s, s.input.Focus()

	case spinner.TickMsg:
		if s.session != nil && !s.waiting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		s.follow = s.viewport.AtBottom()
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *ChatScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return s.send()
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		s.follow = s.viewport.AtBottom()
		return cmd
	}

	if !s.CapturesInput() || s.waiting {
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// send starts a reply in the background. Log changes are signalled on a
// channel that a re-armed command drains, one chunkMsg per signal.
func (s *ChatScreen) send() tea.Cmd {
	text := s.input.Value()
	if !s.CapturesInput() || s.waiting || strings.TrimSpace(text) == "" {
		return nil
	}
	s.input.Reset()
	s.input.Blur()
	s.waiting = true
	s.follow = true

	updates := make(chan struct{}, 1)
	s.updates = updates
	ctx, sess := s.ctx, s.session

	return tea.Batch(
		func() tea.Msg {
			err := sess.Send(ctx, text, func() {
				select {
				case updates <- struct{}{}:
				default:
				}
			})
			close(updates)
			return replyDoneMsg{Err: err}
		},
		waitForChunk(updates),
		s.spinner.Tick,
	)
}

func waitForChunk(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return chunkMsg{}
	}
}
