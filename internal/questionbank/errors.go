package questionbank

import (
	"errors"
	"fmt"
)

// ErrUnknownTopic is returned when no exercise content exists for a topic.
var ErrUnknownTopic = errors.New("unknown exercise topic")

// ContentError reports a lookup miss in the question bank.
type ContentError struct {
	Topic string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("no exercise content for topic %q", e.Topic)
}

func (e *ContentError) Unwrap() error { return ErrUnknownTopic }
