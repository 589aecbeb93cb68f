// Package exercise runs a topic practice session over the fixed exercise
// content of the question bank.
package exercise

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/stinglish/stinglish/internal/questionbank"
)

// Phase is the session's lifecycle state.
type Phase int

const (
	PhaseTopicSelect Phase = iota // Waiting for a topic
	PhaseInProgress               // Serving questions
	PhaseFinished                 // Score available
	PhaseNoContent                // Topic has no content; recoverable via Reset
)

func (p Phase) String() string {
	switch p {
	case PhaseTopicSelect:
		return "topic-select"
	case PhaseInProgress:
		return "in-progress"
	case PhaseFinished:
		return "finished"
	case PhaseNoContent:
		return "no-content"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Feedback messages shown after an answer.
const (
	CorrectMessage   = "Correct!"
	IncorrectMessage = "Needs improvement!"
)

// NoContentMessage is shown when a topic has no exercise content.
func NoContentMessage(topic string) string {
	return fmt.Sprintf(`We couldn't find an exercise for "%s". Please try another topic.`, topic)
}

var (
	// ErrNotInProgress is returned by operations that need an active question.
	ErrNotInProgress = errors.New("exercise not in progress")

	// ErrNotAnswered is returned by Next before the current question has
	// been answered.
	ErrNotAnswered = errors.New("current question has not been answered")
)

// Content supplies exercise topics and questions.
type Content interface {
	Topics() []string
	Lookup(topic string) ([]questionbank.ExerciseQuestion, error)
}

// Feedback describes the answer given to one question.
type Feedback struct {
	Correct     bool
	Chosen      string
	Answer      string
	Explanation string
}

// Message returns the headline for the feedback panel.
func (f Feedback) Message() string {
	if f.Correct {
		return CorrectMessage
	}
	return IncorrectMessage
}

// Session is one pass through a topic's questions.
type Session struct {
	content Content

	phase     Phase
	topic     string
	questions []questionbank.ExerciseQuestion
	index     int
	answers   map[int]string
	err       error
}

// New creates a session waiting for a topic.
func New(content Content) *Session {
	return &Session{content: content, answers: map[int]string{}}
}

// Topics returns the topics that can be started.
func (s *Session) Topics() []string { return s.content.Topics() }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Topic returns the selected topic.
func (s *Session) Topic() string { return s.topic }

// Err returns the content error that put the session in NoContent.
func (s *Session) Err() error { return s.err }

// Start begins practicing topic. A topic without content moves the
// session to NoContent and returns the *questionbank.ContentError.
func (s *Session) Start(topic string) error {
	s.reset()
	s.topic = topic

	qs, err := s.content.Lookup(topic)
	if err != nil {
		s.phase = PhaseNoContent
		s.err = err
		slog.Warn("exercise topic has no content", "topic", topic, "error", err)
		return err
	}
	s.questions = qs
	s.phase = PhaseInProgress
	slog.Info("exercise started", "topic", topic, "questions", len(qs))
	return nil
}

// Current returns the question being shown.
func (s *Session) Current() (questionbank.ExerciseQuestion, bool) {
	if s.phase != PhaseInProgress {
		return questionbank.ExerciseQuestion{}, false
	}
	return s.questions[s.index], true
}

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total returns the number of questions in the topic.
func (s *Session) Total() int { return len(s.questions) }

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool { return s.index == len(s.questions)-1 }

// Select answers the current question. Once answered, the question is
// locked and further selections return the existing feedback unchanged.
func (s *Session) Select(option string) (Feedback, error) {
	q, ok := s.Current()
	if !ok {
		return Feedback{}, ErrNotInProgress
	}
	if _, answered := s.answers[s.index]; !answered {
		s.answers[s.index] = option
	}
	return s.feedback(q, s.answers[s.index]), nil
}

// SelectIndex answers the current question with option i.
func (s *Session) SelectIndex(i int) (Feedback, error) {
	q, ok := s.Current()
	if !ok {
		return Feedback{}, ErrNotInProgress
	}
	if i < 0 || i >= len(q.Options) {
		return Feedback{}, fmt.Errorf("select option %d: out of range", i)
	}
	return s.Select(q.Options[i])
}

// Feedback returns the feedback for the current question if it has been
// answered.
func (s *Session) Feedback() (Feedback, bool) {
	q, ok := s.Current()
	if !ok {
		return Feedback{}, false
	}
	chosen, answered := s.answers[s.index]
	if !answered {
		return Feedback{}, false
	}
	return s.feedback(q, chosen), true
}

func (s *Session) feedback(q questionbank.ExerciseQuestion, chosen string) Feedback {
	return Feedback{
		Correct:     chosen == q.Answer,
		Chosen:      chosen,
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}
}

// Next moves to the following question, or to Finished after the last.
// The current question must be answered first.
func (s *Session) Next() error {
	if s.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if _, answered := s.answers[s.index]; !answered {
		return ErrNotAnswered
	}
	if s.index < len(s.questions)-1 {
		s.index++
		return nil
	}
	s.phase = PhaseFinished
	correct, total := s.Score()
	slog.Info("exercise finished", "topic", s.topic, "correct", correct, "total", total)
	return nil
}

// Score compares the stored answers with the correct ones. Unanswered
// questions count as incorrect.
func (s *Session) Score() (correct, total int) {
	for i, q := range s.questions {
		if chosen, ok := s.answers[i]; ok && chosen == q.Answer {
			correct++
		}
	}
	return correct, len(s.questions)
}

// Reset returns to topic selection.
func (s *Session) Reset() {
	s.reset()
}

func (s *Session) reset() {
	s.phase = PhaseTopicSelect
	s.topic = ""
	s.questions = nil
	s.index = 0
	clear(s.answers)
	s.err = nil
}
