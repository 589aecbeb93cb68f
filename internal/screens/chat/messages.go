package chat

import "github.com/stinglish/stinglish/internal/chat"

// sessionReadyMsg is sent once the tutor conversation has been set up,
// successfully or not.
type sessionReadyMsg struct {
	Session *chat.Session
}

// chunkMsg is sent each time the chat log changed while a reply streams in.
type chunkMsg struct{}

// replyDoneMsg is sent when the tutor's reply is complete or has failed.
type replyDoneMsg struct {
	Err error
}
