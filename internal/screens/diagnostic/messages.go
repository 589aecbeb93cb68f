package diagnostic

// startMsg asks the screen to sample the questions.
type startMsg struct{}

// advanceMsg is sent once an answer has been acknowledged long enough.
// Index is the question it belongs to.
type advanceMsg struct {
	Index int
}

// recommendationMsg carries the topic suggested by the tutor, which may be
// empty.
type recommendationMsg struct {
	Topic string
}
