// Package questionbank holds the static diagnostic pool and the per-topic
// exercise content.
package questionbank

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// SampleSize is the number of questions in one diagnostic attempt.
const SampleSize = 10

//go:embed data/diagnostic.yaml
var diagnosticYAML []byte

//go:embed data/exercises.yaml
var exercisesYAML []byte

type rawQuestion struct {
	ID      string   `yaml:"id"`
	Kind    Kind     `yaml:"kind"`
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Answer  string   `yaml:"answer"`
}

type rawDiagnostic struct {
	Questions []rawQuestion `yaml:"questions"`
}

type rawExercise struct {
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	Answer      string   `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

type rawTopic struct {
	Name      string        `yaml:"name"`
	Questions []rawExercise `yaml:"questions"`
}

type rawExercises struct {
	Topics []rawTopic `yaml:"topics"`
}

// Bank is an immutable question bank.
type Bank struct {
	pool      []Question
	topics    []string
	exercises map[string][]ExerciseQuestion
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// Default returns the bank built from the embedded content.
func Default() *Bank {
	defaultOnce.Do(func() {
		b, err := Load(diagnosticYAML, exercisesYAML)
		if err != nil {
			panic(fmt.Sprintf("questionbank: embedded content is invalid: %v", err))
		}
		defaultBank = b
	})
	return defaultBank
}

// Load parses and schema-validates diagnostic and exercise YAML documents.
func Load(diagnostic, exercises []byte) (*Bank, error) {
	var diag rawDiagnostic
	if err := decode("diagnostic", diagnostic, diagnosticSchema, &diag); err != nil {
		return nil, err
	}
	var ex rawExercises
	if err := decode("exercises", exercises, exercisesSchema, &ex); err != nil {
		return nil, err
	}

	b := &Bank{exercises: make(map[string][]ExerciseQuestion, len(ex.Topics))}

	for _, rq := range diag.Questions {
		b.pool = append(b.pool, toQuestion(rq))
	}

	for _, t := range ex.Topics {
		if _, dup := b.exercises[t.Name]; dup {
			return nil, fmt.Errorf("exercises: duplicate topic %q", t.Name)
		}
		qs := make([]ExerciseQuestion, 0, len(t.Questions))
		for _, q := range t.Questions {
			qs = append(qs, ExerciseQuestion(q))
		}
		b.topics = append(b.topics, t.Name)
		b.exercises[t.Name] = qs
	}

	return b, nil
}

// decode validates doc against schema, then unmarshals it into out.
func decode(name string, doc []byte, schema map[string]any, out any) error {
	var generic any
	if err := yaml.Unmarshal(doc, &generic); err != nil {
		return fmt.Errorf("%s: parse yaml: %w", name, err)
	}
	compiled, err := compileSchema(name, schema)
	if err != nil {
		return err
	}
	if err := compiled.Validate(generic); err != nil {
		return fmt.Errorf("%s: schema validation failed: %w", name, err)
	}
	if err := yaml.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("%s: decode: %w", name, err)
	}
	return nil
}

func toQuestion(rq rawQuestion) Question {
	switch rq.Kind {
	case KindMultipleChoice:
		return &MultipleChoice{ID: rq.ID, Prompt: rq.Prompt, Options: rq.Options, Answer: rq.Answer}
	case KindOrderSentence:
		return &OrderSentence{ID: rq.ID, Prompt: rq.Prompt, Words: rq.Options, Answer: rq.Answer}
	default:
		return &FillInBlank{ID: rq.ID, Prompt: rq.Prompt, Answer: rq.Answer}
	}
}

// Pool returns the full diagnostic pool in definition order.
func (b *Bank) Pool() []Question {
	return slices.Clone(b.pool)
}

// Sample returns up to SampleSize questions drawn without replacement.
func (b *Bank) Sample(rng *rand.Rand) []Question {
	return b.SampleN(rng, SampleSize)
}

// SampleN shuffles a copy of the pool (Fisher-Yates) and returns the first
// n questions, or the whole shuffled pool when it holds fewer than n.
// A nil rng uses the global source.
func (b *Bank) SampleN(rng *rand.Rand, n int) []Question {
	shuffled := slices.Clone(b.pool)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := intN(rng, i+1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

// Topics returns the exercise topics in display order.
func (b *Bank) Topics() []string {
	return slices.Clone(b.topics)
}

// ExerciseQuestions returns the fixed questions for topic, or nil when the
// topic is unknown.
func (b *Bank) ExerciseQuestions(topic string) []ExerciseQuestion {
	return slices.Clone(b.exercises[topic])
}

// Lookup is ExerciseQuestions with a *ContentError for unknown or empty topics.
func (b *Bank) Lookup(topic string) ([]ExerciseQuestion, error) {
	qs := b.ExerciseQuestions(topic)
	if len(qs) == 0 {
		return nil, &ContentError{Topic: topic}
	}
	return qs, nil
}

// Problem is a content defect found by Validate.
type Problem struct {
	Ref     string
	Message string
}

func (p Problem) String() string {
	return p.Ref + ": " + p.Message
}

// Validate runs structural checks that the schema cannot express.
func (b *Bank) Validate() []Problem {
	var problems []Problem
	seen := make(map[string]bool, len(b.pool))

	for _, q := range b.pool {
		id := q.QuestionID()
		if seen[id] {
			problems = append(problems, Problem{Ref: id, Message: "duplicate question id"})
		}
		seen[id] = true

		switch q := q.(type) {
		case *MultipleChoice:
			if !containsMatch(q.Options, q.Answer) {
				problems = append(problems, Problem{Ref: id, Message: fmt.Sprintf("answer %q is not one of the options", q.Answer)})
			}
		case *OrderSentence:
			if missing := missingWords(q.Words, q.Answer); len(missing) > 0 {
				problems = append(problems, Problem{Ref: id, Message: fmt.Sprintf("answer uses words not in the word bank: %s", strings.Join(missing, ", "))})
			}
		}
	}

	for _, topic := range b.topics {
		for i, q := range b.exercises[topic] {
			ref := fmt.Sprintf("%s #%d", topic, i+1)
			if !slices.Contains(q.Options, q.Answer) {
				problems = append(problems, Problem{Ref: ref, Message: fmt.Sprintf("answer %q is not one of the options", q.Answer)})
			}
			if strings.TrimSpace(q.Explanation) == "" {
				problems = append(problems, Problem{Ref: ref, Message: "missing explanation"})
			}
		}
	}

	return problems
}

func containsMatch(options []string, answer string) bool {
	for _, o := range options {
		if Match(o, answer) {
			return true
		}
	}
	return false
}

// missingWords returns the answer words that the word bank cannot supply,
// counting repeated words separately.
func missingWords(words []string, answer string) []string {
	available := make(map[string]int, len(words))
	for _, w := range words {
		available[Normalize(w)]++
	}
	var missing []string
	for _, w := range strings.Fields(answer) {
		key := Normalize(w)
		if available[key] == 0 {
			missing = append(missing, w)
			continue
		}
		available[key]--
	}
	return missing
}
