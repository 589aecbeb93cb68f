// Package chat holds the message log of one conversational practice
// session with the tutor.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/stinglish/stinglish/internal/learner"
	"github.com/stinglish/stinglish/internal/tutor"
)

// Role identifies who wrote a message in the log.
type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// Texts shown in the conversation.
const (
	ErrorMessage = "Sorry, I encountered an error. Please try again."
	Placeholder  = "Type your message..."
)

// ErrBusy is returned by Send while a reply is still being produced.
var ErrBusy = errors.New("chat: a reply is already in progress")

// Greeting returns the tutor's opening line for name.
func Greeting(name string) string {
	return fmt.Sprintf("Hello %s! I'm Stinglish. Let's practice your English. You can start by asking me a question or telling me about your day.", name)
}

// Message is one entry in the chat log.
type Message struct {
	Role Role
	Text string
}

// Option configures a Session.
type Option func(*Session)

// WithResponder sets the reply strategy. Defaults to streaming.
func WithResponder(r Responder) Option {
	return func(s *Session) { s.responder = r }
}

// Session is the chat log for one visit to the chat view. It is safe for
// concurrent use: replies are produced off the UI goroutine while the view
// reads Messages.
type Session struct {
	responder Responder
	conv      *tutor.Conversation

	mu       sync.Mutex
	messages []Message
	busy     bool
	initErr  error
}

// New starts a conversation for profile. If the tutor cannot be reached
// the session is disabled and its log holds a system message explaining
// why; New itself never fails.
func New(ctx context.Context, client *tutor.Client, profile *learner.Profile, opts ...Option) *Session {
	s := &Session{responder: StreamingResponder{}}
	for _, opt := range opts {
		opt(s)
	}

	conv, err := client.NewConversation(ctx, profile)
	if err != nil {
		slog.Warn("chat unavailable", "error", err)
		s.initErr = err
		s.messages = []Message{{Role: RoleSystem, Text: initFailureText(err)}}
		return s
	}
	s.conv = conv
	s.messages = []Message{{Role: RoleModel, Text: Greeting(profile.Name)}}
	return s
}

func initFailureText(err error) string {
	var ce *tutor.ConfigError
	if errors.As(err, &ce) {
		return ce.Guidance
	}
	return "The AI tutor could not be started: " + err.Error()
}

// Disabled reports whether input is disabled because initialization failed.
func (s *Session) Disabled() bool { return s.conv == nil }

// InitErr returns the initialization failure, if any.
func (s *Session) InitErr() error { return s.initErr }

// ConversationID returns the tutor conversation ID, or "" when disabled.
func (s *Session) ConversationID() string {
	if s.conv == nil {
		return ""
	}
	return s.conv.ID()
}

// Busy reports whether a reply is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Messages returns a snapshot of the log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Send appends the learner's message and the tutor's reply. onUpdate, if
// set, is called after every change to the log. Blank input and a
// disabled session are no-ops. A failed reply appends ErrorMessage and
// returns the error; the session stays usable.
func (s *Session) Send(ctx context.Context, text string, onUpdate func()) error {
	if s.Disabled() || strings.TrimSpace(text) == "" {
		return nil
	}
	notify := func() {
		if onUpdate != nil {
			onUpdate()
		}
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	s.messages = append(s.messages, Message{Role: RoleUser, Text: text})
	s.mu.Unlock()
	notify()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
		notify()
	}()

	started := false
	_, err := s.responder.Respond(ctx, s.conv, text, func(chunk string) {
		s.mu.Lock()
		if !started {
			s.messages = append(s.messages, Message{Role: RoleModel})
			started = true
		}
		s.messages[len(s.messages)-1].Text += chunk
		s.mu.Unlock()
		notify()
	})
	if err != nil {
		s.mu.Lock()
		s.messages = append(s.messages, Message{Role: RoleModel, Text: ErrorMessage})
		s.mu.Unlock()
		return err
	}
	return nil
}
