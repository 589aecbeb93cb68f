package tutor

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/stinglish/stinglish/internal/learner"
	"github.com/stinglish/stinglish/internal/llm"
)

// Conversation is one chat with the tutor. History grows only with turns
// that completed successfully.
type Conversation struct {
	id       string
	provider llm.Provider
	system   string
	cfg      Config

	mu      sync.Mutex
	history []llm.Message
}

// NewConversation starts a conversation tailored to the learner's level.
// It fails with a *ConfigError when no credential is configured.
func (c *Client) NewConversation(ctx context.Context, profile *learner.Profile) (*Conversation, error) {
	p, err := c.Provider(ctx)
	if err != nil {
		return nil, err
	}
	conv := &Conversation{
		id:       uuid.NewString(),
		provider: p,
		system:   SystemPrompt(profile.LevelLabel()),
		cfg:      c.cfg,
	}
	slog.Info("conversation started", "conversation_id", conv.id, "model", p.ModelID())
	return conv, nil
}

// ID returns the conversation ID.
func (cv *Conversation) ID() string { return cv.id }

// System returns the system instruction.
func (cv *Conversation) System() string { return cv.system }

// History returns a copy of the completed turns, oldest first.
func (cv *Conversation) History() []llm.Message {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return slices.Clone(cv.history)
}

func (cv *Conversation) request(text string) llm.Request {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	msgs := make([]llm.Message, 0, len(cv.history)+1)
	msgs = append(msgs, cv.history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})
	return llm.Request{
		System:      cv.system,
		Messages:    msgs,
		MaxTokens:   cv.cfg.MaxTokens,
		Temperature: cv.cfg.Temperature,
	}
}

func (cv *Conversation) commit(user, reply string) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.history = append(cv.history,
		llm.Message{Role: llm.RoleUser, Content: user},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
}

// Send sends text and returns the complete reply.
func (cv *Conversation) Send(ctx context.Context, text string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)
	resp, err := cv.provider.Generate(ctx, cv.request(text))
	if err != nil {
		slog.Warn("chat turn failed", "conversation_id", cv.id, "error", err)
		return "", &ServiceError{Op: "send", Err: err}
	}
	reply := resp.Text()
	cv.commit(text, reply)
	return reply, nil
}

// Stream sends text and calls onChunk with each fragment of the reply as
// it arrives. The fragments concatenate to the returned reply.
func (cv *Conversation) Stream(ctx context.Context, text string, onChunk func(string)) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	var b strings.Builder
	_, err := cv.provider.Stream(ctx, cv.request(text), func(chunk string) {
		b.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	})
	if err != nil {
		slog.Warn("chat stream failed", "conversation_id", cv.id, "error", err, "received", b.Len())
		return "", &ServiceError{Op: "stream", Err: err}
	}
	reply := b.String()
	cv.commit(text, reply)
	return reply, nil
}
