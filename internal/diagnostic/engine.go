// Package diagnostic runs one attempt at the placement test: it samples
// questions, collects answers through the three interaction modes, scores
// the attempt and asks for a remedial topic.
package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stinglish/stinglish/internal/proficiency"
	"github.com/stinglish/stinglish/internal/questionbank"
)

// AdvanceDelay is how long an answer stays acknowledged on screen before
// the next question is shown.
const AdvanceDelay = 500 * time.Millisecond

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseLoading    Phase = iota // Questions not sampled yet
	PhaseInProgress              // Serving questions
	PhaseScoring                 // All questions answered, level pending
	PhaseFinished                // Level and recommendation available
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseInProgress:
		return "in-progress"
	case PhaseScoring:
		return "scoring"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrEmptyAnswer is returned for blank free-text input or an empty
	// word-order sentence.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrAnswerPending is returned when an answer arrives before the
	// previous one was acknowledged with Advance.
	ErrAnswerPending = errors.New("previous answer not yet acknowledged")

	// ErrNoPendingAnswer is returned by Advance when nothing was answered.
	ErrNoPendingAnswer = errors.New("no answer to acknowledge")

	// ErrWrongKind is returned when an input path does not match the
	// current question's kind.
	ErrWrongKind = errors.New("input does not match question kind")
)

// PhaseError reports an operation attempted in the wrong phase.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("diagnostic: %s not allowed in %s phase", e.Op, e.Phase)
}

// Sampler draws the questions for one attempt.
type Sampler interface {
	SampleN(rng *rand.Rand, n int) []questionbank.Question
}

// Recommender infers the topic a learner should practice from their
// mistakes. An empty topic means no recommendation.
type Recommender interface {
	InferTopic(ctx context.Context, incorrect []IncorrectAnswer) (string, error)
}

// IncorrectAnswer is a wrongly answered question, as sent to the tutor.
type IncorrectAnswer struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
}

// Result is the acknowledgement shown for one answered question.
type Result struct {
	QuestionID string
	Given      string
	Correct    bool
	Answer     string
}

// Summary is the outcome of a finished attempt.
type Summary struct {
	AttemptID string
	Score     int
	Total     int
	Level     proficiency.Level
	Topic     string
}

// Option configures an Engine.
type Option func(*Engine)

// WithOnComplete registers the callback that receives the assessed level.
func WithOnComplete(fn func(proficiency.Level)) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// WithSampleSize overrides the number of questions per attempt.
func WithSampleSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sampleSize = n
		}
	}
}

// WithRand sets the random source used for sampling.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine is the state machine for one diagnostic attempt.
type Engine struct {
	id         string
	bank       Sampler
	rng        *rand.Rand
	sampleSize int
	onComplete func(proficiency.Level)
	logger     *slog.Logger

	phase     Phase
	questions []questionbank.Question
	index     int
	score     int
	incorrect []IncorrectAnswer
	pending   *Result
	words     *WordBank

	level  proficiency.Level
	scored bool
	topic  string
}

// New creates an engine in the Loading phase.
func New(bank Sampler, opts ...Option) *Engine {
	e := &Engine{
		id:         uuid.NewString(),
		bank:       bank,
		sampleSize: questionbank.SampleSize,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("attempt_id", e.id)
	return e
}

// ID returns the attempt ID.
func (e *Engine) ID() string { return e.id }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Start samples the questions. An empty sample goes straight to Scoring.
func (e *Engine) Start() error {
	if e.phase != PhaseLoading {
		return &PhaseError{Op: "start", Phase: e.phase}
	}
	e.questions = e.bank.SampleN(e.rng, e.sampleSize)
	e.index = 0
	if len(e.questions) == 0 {
		e.phase = PhaseScoring
		e.logger.Warn("diagnostic started with no questions")
		return nil
	}
	e.phase = PhaseInProgress
	e.prepare()
	e.logger.Info("diagnostic started", "questions", len(e.questions))
	return nil
}

// prepare sets up per-question input state.
func (e *Engine) prepare() {
	e.words = nil
	if q, ok := e.questions[e.index].(*questionbank.OrderSentence); ok {
		e.words = NewWordBank(q.Words)
	}
}

// Current returns the question being answered, or nil outside InProgress.
func (e *Engine) Current() questionbank.Question {
	if e.phase != PhaseInProgress {
		return nil
	}
	return e.questions[e.index]
}

// Index returns the zero-based position of the current question.
func (e *Engine) Index() int { return e.index }

// Total returns the number of sampled questions.
func (e *Engine) Total() int { return len(e.questions) }

// Correct returns the number of correct answers so far.
func (e *Engine) Correct() int { return e.score }

// Answered returns the number of questions answered so far.
func (e *Engine) Answered() int { return e.score + len(e.incorrect) }

// Incorrect returns a copy of the wrong answers recorded so far.
func (e *Engine) Incorrect() []IncorrectAnswer {
	return append([]IncorrectAnswer(nil), e.incorrect...)
}

// Pending returns the answer awaiting acknowledgement, if any.
func (e *Engine) Pending() *Result { return e.pending }

// WordBank returns the word bank of the current order-sentence question,
// or nil for other kinds.
func (e *Engine) WordBank() *WordBank {
	if e.phase != PhaseInProgress {
		return nil
	}
	return e.words
}

// SelectOption answers a multiple-choice question with option i.
func (e *Engine) SelectOption(i int) (*Result, error) {
	q, ok := e.Current().(*questionbank.MultipleChoice)
	if !ok {
		return nil, e.kindError("select option")
	}
	if i < 0 || i >= len(q.Options) {
		return nil, fmt.Errorf("select option %d: out of range", i)
	}
	return e.Answer(q.Options[i])
}

// CanSubmitText reports whether s is a submittable free-text answer.
func CanSubmitText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// SubmitText answers a fill-in-the-blank question. Blank input is
// rejected without changing state.
func (e *Engine) SubmitText(s string) (*Result, error) {
	if _, ok := e.Current().(*questionbank.FillInBlank); !ok {
		return nil, e.kindError("submit text")
	}
	if !CanSubmitText(s) {
		return nil, ErrEmptyAnswer
	}
	return e.Answer(s)
}

// SubmitOrder answers an order-sentence question with the word bank's
// sentence.
func (e *Engine) SubmitOrder() (*Result, error) {
	if _, ok := e.Current().(*questionbank.OrderSentence); !ok {
		return nil, e.kindError("submit order")
	}
	if !e.words.CanSubmit() {
		return nil, ErrEmptyAnswer
	}
	return e.Answer(e.words.Sentence())
}

func (e *Engine) kindError(op string) error {
	if e.phase != PhaseInProgress {
		return &PhaseError{Op: op, Phase: e.phase}
	}
	return fmt.Errorf("%s on %s question: %w", op, e.questions[e.index].Kind(), ErrWrongKind)
}

// Answer grades response against the current question and records it as
// pending. Every input path ends here.
func (e *Engine) Answer(response string) (*Result, error) {
	if e.phase != PhaseInProgress {
		return nil, &PhaseError{Op: "answer", Phase: e.phase}
	}
	if e.pending != nil {
		return nil, ErrAnswerPending
	}

	q := e.questions[e.index]
	correct := questionbank.Match(response, q.CorrectAnswer())
	if correct {
		e.score++
	} else {
		e.incorrect = append(e.incorrect, IncorrectAnswer{
			Question:      q.Text(),
			UserAnswer:    response,
			CorrectAnswer: q.CorrectAnswer(),
		})
	}
	e.pending = &Result{
		QuestionID: q.QuestionID(),
		Given:      response,
		Correct:    correct,
		Answer:     q.CorrectAnswer(),
	}
	e.logger.Debug("diagnostic answer",
		"question_id", q.QuestionID(),
		"kind", q.Kind(),
		"correct", correct,
	)
	return e.pending, nil
}

// Advance acknowledges the pending answer and moves to the next question.
// After the last question the engine enters Scoring.
func (e *Engine) Advance() error {
	if e.phase != PhaseInProgress {
		return &PhaseError{Op: "advance", Phase: e.phase}
	}
	if e.pending == nil {
		return ErrNoPendingAnswer
	}
	e.pending = nil
	e.index++
	if e.index >= len(e.questions) {
		e.phase = PhaseScoring
		e.words = nil
		return nil
	}
	e.prepare()
	return nil
}

// Score derives the level from the attempt and reports it to the
// completion callback. The callback runs once per attempt; later calls
// return the same level.
func (e *Engine) Score() (proficiency.Level, error) {
	if e.phase != PhaseScoring && e.phase != PhaseFinished {
		return proficiency.Unknown, &PhaseError{Op: "score", Phase: e.phase}
	}
	if e.scored {
		return e.level, nil
	}
	e.level = proficiency.FromScore(e.score, len(e.questions))
	e.scored = true
	e.logger.Info("diagnostic scored",
		"score", e.score,
		"total", len(e.questions),
		"level", e.level.String(),
	)
	if e.onComplete != nil {
		e.onComplete(e.level)
	}
	return e.level, nil
}

// Recommend asks rec for a practice topic. Errors are logged and reported
// as no recommendation. No call is made without incorrect answers.
func Recommend(ctx context.Context, rec Recommender, incorrect []IncorrectAnswer) string {
	if rec == nil || len(incorrect) == 0 {
		return ""
	}
	topic, err := rec.InferTopic(ctx, incorrect)
	if err != nil {
		slog.Warn("topic recommendation failed", "error", err, "incorrect", len(incorrect))
		return ""
	}
	return topic
}

// RecommendTopic scores the attempt if needed, asks rec for a practice
// topic and finishes. The level never depends on rec succeeding.
func (e *Engine) RecommendTopic(ctx context.Context, rec Recommender) (string, error) {
	if _, err := e.Score(); err != nil {
		return "", err
	}
	topic := Recommend(ctx, rec, e.incorrect)
	if err := e.Finish(topic); err != nil {
		return "", err
	}
	return topic, nil
}

// Finish records the recommended topic, which may be empty, and enters
// Finished. It scores the attempt first if Score was not called.
func (e *Engine) Finish(topic string) error {
	if _, err := e.Score(); err != nil {
		return err
	}
	if e.phase == PhaseFinished {
		return &PhaseError{Op: "finish", Phase: e.phase}
	}
	e.topic = topic
	e.phase = PhaseFinished
	e.logger.Info("diagnostic finished", "topic", topic)
	return nil
}

// Result returns the attempt summary. Level and Topic are only final once
// the engine is Finished.
func (e *Engine) Result() Summary {
	return Summary{
		AttemptID: e.id,
		Score:     e.score,
		Total:     len(e.questions),
		Level:     e.level,
		Topic:     e.topic,
	}
}
