package questionbank

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBankContent(t *testing.T) {
	b := Default()

	counts := map[Kind]int{}
	for _, q := range b.Pool() {
		counts[q.Kind()]++
	}
	assert.Equal(t, 10, counts[KindMultipleChoice])
	assert.Equal(t, 8, counts[KindFillInBlank])
	assert.Equal(t, 8, counts[KindOrderSentence])

	assert.Equal(t, []string{
		"Present Simple vs. Continuous",
		"Past Simple",
		"Prepositions of Time",
		"Phrasal Verbs (Common)",
		"Articles (a, an, the)",
	}, b.Topics())

	for _, topic := range b.Topics() {
		assert.Len(t, b.ExerciseQuestions(topic), 5, topic)
	}
}

func TestDefaultBankValidates(t *testing.T) {
	problems := Default().Validate()
	assert.Empty(t, problems)
}

func TestQuestionVariants(t *testing.T) {
	byID := map[string]Question{}
	for _, q := range Default().Pool() {
		byID[q.QuestionID()] = q
	}

	mc, ok := byID["mc-1"].(*MultipleChoice)
	require.True(t, ok, "mc-1 should be multiple choice")
	assert.Equal(t, []string{"is", "are", "am", "be"}, mc.Options)
	assert.Equal(t, "is", mc.CorrectAnswer())

	fb, ok := byID["fb-7"].(*FillInBlank)
	require.True(t, ok, "fb-7 should be fill in the blank")
	assert.Equal(t, "has studied", fb.CorrectAnswer())

	os, ok := byID["os-1"].(*OrderSentence)
	require.True(t, ok, "os-1 should be order sentence")
	assert.Equal(t, []string{"is", "My", "color", "blue", "favorite"}, os.Words)
	assert.Equal(t, "My favorite color is blue", os.CorrectAnswer())
}

func TestSampleNoDuplicates(t *testing.T) {
	b := Default()
	rng := rand.New(rand.NewPCG(1, 2))

	for range 50 {
		qs := b.Sample(rng)
		require.Len(t, qs, SampleSize)
		seen := map[string]bool{}
		for _, q := range qs {
			assert.False(t, seen[q.QuestionID()], "duplicate id %s", q.QuestionID())
			seen[q.QuestionID()] = true
		}
	}
}

func TestSampleVariesAcrossCalls(t *testing.T) {
	b := Default()
	rng := rand.New(rand.NewPCG(7, 11))

	first := ids(b.Sample(rng))
	differs := false
	for range 20 {
		if ids(b.Sample(rng)) != first {
			differs = true
			break
		}
	}
	assert.True(t, differs, "sampling returned the same order 20 times in a row")
}

func TestSampleSmallPool(t *testing.T) {
	b, err := Load([]byte(`questions:
  - id: a
    kind: fill-in-the-blank
    prompt: "one"
    answer: "1"
  - id: b
    kind: fill-in-the-blank
    prompt: "two"
    answer: "2"
`), exercisesYAML)
	require.NoError(t, err)

	qs := b.Sample(nil)
	assert.Len(t, qs, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, strings.Fields(ids(qs)))
}

func TestSampleDoesNotMutatePool(t *testing.T) {
	b := Default()
	before := ids(b.Pool())
	b.Sample(rand.New(rand.NewPCG(3, 4)))
	assert.Equal(t, before, ids(b.Pool()))
}

func TestLookupUnknownTopic(t *testing.T) {
	b := Default()

	assert.Empty(t, b.ExerciseQuestions("Quantum Grammar"))

	_, err := b.Lookup("Quantum Grammar")
	require.Error(t, err)
	var ce *ContentError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Quantum Grammar", ce.Topic)
	assert.True(t, errors.Is(err, ErrUnknownTopic))
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", `questions:
  - id: x
    kind: essay
    prompt: "p"
    answer: "a"
`},
		{"missing answer", `questions:
  - id: x
    kind: fill-in-the-blank
    prompt: "p"
`},
		{"choice without options", `questions:
  - id: x
    kind: multiple-choice
    prompt: "p"
    answer: "a"
`},
		{"free text with options", `questions:
  - id: x
    kind: fill-in-the-blank
    prompt: "p"
    options: ["a"]
    answer: "a"
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc), exercisesYAML)
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsProblems(t *testing.T) {
	b, err := Load([]byte(`questions:
  - id: q1
    kind: multiple-choice
    prompt: "p"
    options: ["a", "b"]
    answer: "c"
  - id: q1
    kind: order-sentence
    prompt: "p"
    options: ["the", "cat"]
    answer: "the the cat"
`), exercisesYAML)
	require.NoError(t, err)

	problems := b.Validate()
	require.Len(t, problems, 3)
	assert.Contains(t, problems[0].String(), "not one of the options")
	assert.Contains(t, problems[1].String(), "duplicate question id")
	assert.Contains(t, problems[2].String(), "the")
}

func ids(qs []Question) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = q.QuestionID()
	}
	return strings.Join(parts, " ")
}
