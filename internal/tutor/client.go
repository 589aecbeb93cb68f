// Package tutor talks to the text-generation service on the learner's
// behalf: chat conversations and weakness-topic inference.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/stinglish/stinglish/internal/diagnostic"
	"github.com/stinglish/stinglish/internal/llm"
	"github.com/stinglish/stinglish/internal/questionbank"
)

// ProviderFactory builds the provider on first use. Construction is
// deferred so that a missing credential only surfaces when the tutor is
// actually needed.
type ProviderFactory func(ctx context.Context) (llm.Provider, error)

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// TopicMaxTokens bounds the topic inference reply.
	TopicMaxTokens int
}

// DefaultConfig returns sensible defaults for tutoring.
func DefaultConfig() Config {
	return Config{
		MaxTokens:      1024,
		Temperature:    0.7,
		TopicMaxTokens: 64,
	}
}

// Option configures a Client.
type Option func(*Client)

// WithConfig overrides the generation settings.
func WithConfig(cfg Config) Option {
	return func(c *Client) { c.cfg = cfg }
}

// WithTopics overrides the topics inference may recommend.
func WithTopics(topics []string) Option {
	return func(c *Client) { c.topics = append([]string(nil), topics...) }
}

// Client is safe for concurrent use.
type Client struct {
	factory ProviderFactory
	cfg     Config
	topics  []string

	mu       sync.Mutex
	provider llm.Provider
}

// New creates a client that builds its provider lazily with factory.
func New(factory ProviderFactory, opts ...Option) *Client {
	c := &Client{
		factory: factory,
		cfg:     DefaultConfig(),
		topics:  questionbank.Default().Topics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromProvider creates a client over an existing provider.
func FromProvider(p llm.Provider, opts ...Option) *Client {
	return New(func(context.Context) (llm.Provider, error) { return p, nil }, opts...)
}

// Provider returns the provider, building it on first success. Failures
// are not cached. The error is a *ConfigError or *ServiceError.
func (c *Client) Provider(ctx context.Context) (llm.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return c.provider, nil
	}
	if c.factory == nil {
		return nil, &ServiceError{Op: "init", Err: errors.New("no provider configured")}
	}
	p, err := c.factory(ctx)
	if err != nil {
		return nil, classify("init", err)
	}
	c.provider = p
	return p, nil
}

// Topics returns the topics inference chooses from.
func (c *Client) Topics() []string {
	return append([]string(nil), c.topics...)
}

// InferTopic asks the model which topic the learner should practice. With
// no incorrect answers it returns "" without calling the service. A reply
// that matches no topic also yields "".
func (c *Client) InferTopic(ctx context.Context, incorrect []diagnostic.IncorrectAnswer) (string, error) {
	if len(incorrect) == 0 {
		return "", nil
	}

	p, err := c.Provider(ctx)
	if err != nil {
		return "", err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeTopicInference)
	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildWeaknessPrompt(c.topics, incorrect)},
		},
		Schema:    TopicSchema(c.topics),
		MaxTokens: c.cfg.TopicMaxTokens,
	}

	var content json.RawMessage
	resp, err := p.Generate(ctx, req)
	var invalid *llm.ErrInvalidResponse
	switch {
	case err == nil:
		content = resp.Content
	case errors.As(err, &invalid):
		// An off-list topic still goes through the fuzzy match below.
		slog.Debug("topic reply failed schema validation", "error", err)
		content = invalid.Content
	default:
		return "", &ServiceError{Op: "infer topic", Err: err}
	}

	reply := topicReply(content)
	topic := MatchTopic(reply, c.topics)
	if topic == "" {
		slog.Info("topic reply matched no topic", "reply", strings.TrimSpace(reply))
	}
	return topic, nil
}

var _ diagnostic.Recommender = (*Client)(nil)
