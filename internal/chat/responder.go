package chat

import (
	"context"

	"github.com/stinglish/stinglish/internal/tutor"
)

// Responder produces the tutor's reply to one learner message. onChunk
// receives the reply as it grows; implementations call it at least once
// on success.
type Responder interface {
	Respond(ctx context.Context, conv *tutor.Conversation, text string, onChunk func(string)) (string, error)
}

// StreamingResponder forwards every fragment as it arrives.
type StreamingResponder struct{}

func (StreamingResponder) Respond(ctx context.Context, conv *tutor.Conversation, text string, onChunk func(string)) (string, error) {
	return conv.Stream(ctx, text, onChunk)
}

// SingleShotResponder waits for the complete reply and delivers it as one
// fragment.
type SingleShotResponder struct{}

func (SingleShotResponder) Respond(ctx context.Context, conv *tutor.Conversation, text string, onChunk func(string)) (string, error) {
	reply, err := conv.Send(ctx, text)
	if err != nil {
		return "", err
	}
	onChunk(reply)
	return reply, nil
}

// ResponderFor picks the strategy for the chat.streaming setting.
func ResponderFor(streaming bool) Responder {
	if streaming {
		return StreamingResponder{}
	}
	return SingleShotResponder{}
}
