package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stinglish/stinglish/internal/proficiency"
	"github.com/stinglish/stinglish/internal/questionbank"
)

// fixedSampler serves its questions in order, truncated to n.
type fixedSampler []questionbank.Question

func (s fixedSampler) SampleN(_ *rand.Rand, n int) []questionbank.Question {
	if n < len(s) {
		return append([]questionbank.Question(nil), s[:n]...)
	}
	return append([]questionbank.Question(nil), s...)
}

func fillQuestions(n int) fixedSampler {
	qs := make(fixedSampler, n)
	for i := range qs {
		qs[i] = &questionbank.FillInBlank{
			ID:     fmt.Sprintf("q-%d", i),
			Prompt: fmt.Sprintf("Question %d", i),
			Answer: "is",
		}
	}
	return qs
}

type stubRecommender struct {
	topic string
	err   error
	calls int
	got   []IncorrectAnswer
}

func (r *stubRecommender) InferTopic(_ context.Context, incorrect []IncorrectAnswer) (string, error) {
	r.calls++
	r.got = incorrect
	return r.topic, r.err
}

// answerAll answers every question, the first `correct` of them correctly.
func answerAll(t *testing.T, e *Engine, correct int) {
	t.Helper()
	for i := 0; e.Phase() == PhaseInProgress; i++ {
		answer := "wrong"
		if i < correct {
			answer = "is"
		}
		_, err := e.SubmitText(answer)
		require.NoError(t, err)
		require.NoError(t, e.Advance())
	}
}

func TestEngine_LevelFromScore(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		want    proficiency.Level
	}{
		{"3 of 10", 10, 3, proficiency.A1},
		{"5 of 10", 10, 5, proficiency.A2},
		{"8 of 10", 10, 8, proficiency.B1},
		{"4 of 10 boundary", 10, 4, proficiency.A2},
		{"7 of 10 boundary", 10, 7, proficiency.B1},
		{"no questions", 0, 0, proficiency.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reported []proficiency.Level
			e := New(fillQuestions(tt.total), WithOnComplete(func(l proficiency.Level) {
				reported = append(reported, l)
			}))
			require.NoError(t, e.Start())
			answerAll(t, e, tt.correct)
			require.Equal(t, PhaseScoring, e.Phase())

			level, err := e.Score()
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)

			// A second call neither recomputes nor re-notifies.
			again, err := e.Score()
			require.NoError(t, err)
			assert.Equal(t, level, again)
			assert.Equal(t, []proficiency.Level{tt.want}, reported)
		})
	}
}

func TestEngine_ScoreInvariants(t *testing.T) {
	e := New(questionbank.Default(), WithRand(rand.New(rand.NewPCG(7, 11))))
	require.NoError(t, e.Start())
	require.Equal(t, questionbank.SampleSize, e.Total())

	seen := map[string]bool{}
	for e.Phase() == PhaseInProgress {
		q := e.Current()
		require.NotNil(t, q)
		assert.False(t, seen[q.QuestionID()], "question %s served twice", q.QuestionID())
		seen[q.QuestionID()] = true

		// Alternate right and wrong answers across all three kinds.
		var err error
		switch q := q.(type) {
		case *questionbank.MultipleChoice:
			idx := 0
			if len(seen)%2 == 0 {
				for i, o := range q.Options {
					if o == q.Answer {
						idx = i
					}
				}
			}
			_, err = e.SelectOption(idx)
		case *questionbank.FillInBlank:
			_, err = e.SubmitText(q.Answer)
		case *questionbank.OrderSentence:
			wb := e.WordBank()
			require.NotNil(t, wb)
			require.NoError(t, wb.Place(0))
			_, err = e.SubmitOrder()
		}
		require.NoError(t, err)

		assert.LessOrEqual(t, e.Correct(), e.Total())
		assert.Equal(t, e.Answered(), e.Correct()+len(e.Incorrect()))
		require.NoError(t, e.Advance())
	}

	assert.Len(t, seen, e.Total())
	assert.Equal(t, e.Total(), e.Correct()+len(e.Incorrect()))
}

func TestEngine_SubmitTextRejectsBlank(t *testing.T) {
	e := New(fillQuestions(2))
	require.NoError(t, e.Start())

	for _, in := range []string{"", "   ", "\t\n"} {
		assert.False(t, CanSubmitText(in))
		_, err := e.SubmitText(in)
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	}
	assert.Nil(t, e.Pending())
	assert.Equal(t, 0, e.Answered())
	assert.Equal(t, 0, e.Index())
}

func TestEngine_MatchIgnoresCaseAndSpace(t *testing.T) {
	for _, in := range []string{"Is", " is ", "IS"} {
		e := New(fillQuestions(1))
		require.NoError(t, e.Start())
		res, err := e.SubmitText(in)
		require.NoError(t, err)
		assert.True(t, res.Correct, "input %q", in)
	}
}

func TestEngine_AnswerPendingUntilAdvance(t *testing.T) {
	e := New(fillQuestions(2))
	require.NoError(t, e.Start())

	res, err := e.SubmitText("is")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, res, e.Pending())

	_, err = e.SubmitText("is")
	assert.ErrorIs(t, err, ErrAnswerPending)
	assert.Equal(t, 0, e.Index(), "no advance before acknowledgement")
	assert.Equal(t, 1, e.Correct())

	require.NoError(t, e.Advance())
	assert.Nil(t, e.Pending())
	assert.Equal(t, 1, e.Index())

	assert.ErrorIs(t, e.Advance(), ErrNoPendingAnswer)
}

func TestEngine_IncorrectAnswerRecorded(t *testing.T) {
	e := New(fillQuestions(1))
	require.NoError(t, e.Start())

	res, err := e.SubmitText("are")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "is", res.Answer)
	assert.Equal(t, []IncorrectAnswer{{
		Question:      "Question 0",
		UserAnswer:    "are",
		CorrectAnswer: "is",
	}}, e.Incorrect())
}

func TestEngine_OrderSentence(t *testing.T) {
	q := &questionbank.OrderSentence{
		ID:     "os",
		Prompt: "Order the words",
		Words:  []string{"is", "My", "color", "blue", "favorite"},
		Answer: "My favorite color is blue",
	}
	e := New(fixedSampler{q})
	require.NoError(t, e.Start())

	_, err := e.SubmitOrder()
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	wb := e.WordBank()
	require.NotNil(t, wb)
	for _, i := range []int{1, 4, 2, 0, 3} {
		require.NoError(t, wb.Place(i))
	}
	res, err := e.SubmitOrder()
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, "My favorite color is blue", res.Given)
}

func TestEngine_WrongInputPath(t *testing.T) {
	mc := &questionbank.MultipleChoice{ID: "mc", Prompt: "Pick", Options: []string{"a", "b"}, Answer: "a"}
	e := New(fixedSampler{mc})
	require.NoError(t, e.Start())

	_, err := e.SubmitText("a")
	assert.ErrorIs(t, err, ErrWrongKind)
	assert.Nil(t, e.WordBank())

	_, err = e.SelectOption(5)
	assert.Error(t, err)

	res, err := e.SelectOption(1)
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "b", res.Given)
}

func TestEngine_PhaseErrors(t *testing.T) {
	e := New(fillQuestions(1))

	_, err := e.Answer("is")
	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PhaseLoading, pe.Phase)

	_, err = e.Score()
	assert.ErrorAs(t, err, &pe)

	require.NoError(t, e.Start())
	assert.ErrorAs(t, e.Start(), &pe)
}

func TestEngine_EmptySampleGoesToScoring(t *testing.T) {
	e := New(fixedSampler{})
	require.NoError(t, e.Start())
	assert.Equal(t, PhaseScoring, e.Phase())
	assert.Nil(t, e.Current())

	level, err := e.Score()
	require.NoError(t, err)
	assert.Equal(t, proficiency.Unknown, level)
}

func TestEngine_RecommendTopic(t *testing.T) {
	rec := &stubRecommender{topic: "Past Simple"}
	e := New(fillQuestions(10))
	require.NoError(t, e.Start())
	answerAll(t, e, 6)

	topic, err := e.RecommendTopic(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "Past Simple", topic)
	assert.Equal(t, 1, rec.calls)
	assert.Len(t, rec.got, 4)

	assert.Equal(t, PhaseFinished, e.Phase())
	res := e.Result()
	assert.Equal(t, 6, res.Score)
	assert.Equal(t, 10, res.Total)
	assert.Equal(t, proficiency.A2, res.Level)
	assert.Equal(t, "Past Simple", res.Topic)
	assert.Equal(t, e.ID(), res.AttemptID)
}

func TestEngine_RecommendTopicFailureStillFinishes(t *testing.T) {
	var reported proficiency.Level
	rec := &stubRecommender{err: errors.New("service down")}
	e := New(fillQuestions(10), WithOnComplete(func(l proficiency.Level) { reported = l }))
	require.NoError(t, e.Start())
	answerAll(t, e, 8)

	topic, err := e.RecommendTopic(context.Background(), rec)
	require.NoError(t, err)
	assert.Empty(t, topic)

	assert.Equal(t, PhaseFinished, e.Phase())
	res := e.Result()
	assert.Equal(t, 8, res.Score)
	assert.Equal(t, proficiency.B1, res.Level)
	assert.Empty(t, res.Topic)
	assert.Equal(t, proficiency.B1, reported)
}

func TestEngine_NoRecommendationWhenAllCorrect(t *testing.T) {
	rec := &stubRecommender{topic: "Past Simple"}
	e := New(fillQuestions(3))
	require.NoError(t, e.Start())
	answerAll(t, e, 3)

	topic, err := e.RecommendTopic(context.Background(), rec)
	require.NoError(t, err)
	assert.Empty(t, topic)
	assert.Zero(t, rec.calls)
}

func TestEngine_FinishTwice(t *testing.T) {
	e := New(fillQuestions(1))
	require.NoError(t, e.Start())
	answerAll(t, e, 1)

	require.NoError(t, e.Finish(""))
	var pe *PhaseError
	assert.ErrorAs(t, e.Finish("Past Simple"), &pe)
	assert.Empty(t, e.Result().Topic)
}

func TestEngine_SampleSizeOption(t *testing.T) {
	e := New(fillQuestions(20), WithSampleSize(4))
	require.NoError(t, e.Start())
	assert.Equal(t, 4, e.Total())
}
