package exercise

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stinglish/stinglish/internal/questionbank"
)

func startPastSimple(t *testing.T) *Session {
	t.Helper()
	s := New(questionbank.Default())
	require.NoError(t, s.Start("Past Simple"))
	require.Equal(t, PhaseInProgress, s.Phase())
	return s
}

func wrongOption(q questionbank.ExerciseQuestion) string {
	for _, o := range q.Options {
		if o != q.Answer {
			return o
		}
	}
	return ""
}

func TestSession_AllCorrect(t *testing.T) {
	s := startPastSimple(t)

	for s.Phase() == PhaseInProgress {
		q, ok := s.Current()
		require.True(t, ok)
		fb, err := s.Select(q.Answer)
		require.NoError(t, err)
		assert.True(t, fb.Correct)
		assert.Equal(t, CorrectMessage, fb.Message())
		assert.Equal(t, q.Explanation, fb.Explanation)
		require.NoError(t, s.Next())
	}

	assert.Equal(t, PhaseFinished, s.Phase())
	correct, total := s.Score()
	assert.Equal(t, 5, correct)
	assert.Equal(t, 5, total)
}

func TestSession_NoneCorrect(t *testing.T) {
	s := startPastSimple(t)

	for s.Phase() == PhaseInProgress {
		q, _ := s.Current()
		fb, err := s.Select(wrongOption(q))
		require.NoError(t, err)
		assert.False(t, fb.Correct)
		assert.Equal(t, IncorrectMessage, fb.Message())
		assert.Equal(t, q.Answer, fb.Answer)
		require.NoError(t, s.Next())
	}

	correct, total := s.Score()
	assert.Equal(t, 0, correct)
	assert.Equal(t, 5, total)
}

func TestSession_AnswerLocks(t *testing.T) {
	s := startPastSimple(t)
	q, _ := s.Current()

	first, err := s.Select(wrongOption(q))
	require.NoError(t, err)

	again, err := s.Select(q.Answer)
	require.NoError(t, err)
	assert.Equal(t, first, again, "re-selecting keeps the original answer")

	fb, ok := s.Feedback()
	require.True(t, ok)
	assert.False(t, fb.Correct)
}

func TestSession_NextRequiresAnswer(t *testing.T) {
	s := startPastSimple(t)

	assert.ErrorIs(t, s.Next(), ErrNotAnswered)
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, PhaseInProgress, s.Phase())

	q, _ := s.Current()
	_, err := s.Select(q.Answer)
	require.NoError(t, err)
	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.Index())

	// Questions not yet answered count as incorrect.
	correct, total := s.Score()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 5, total)
}

func TestSession_Progress(t *testing.T) {
	s := startPastSimple(t)
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 5, s.Total())
	assert.False(t, s.IsLast())

	_, ok := s.Feedback()
	assert.False(t, ok)

	for range 4 {
		q, _ := s.Current()
		_, err := s.Select(q.Answer)
		require.NoError(t, err)
		require.NoError(t, s.Next())
	}
	assert.True(t, s.IsLast())
	assert.Equal(t, 4, s.Index())
}

func TestSession_SelectIndex(t *testing.T) {
	s := startPastSimple(t)
	q, _ := s.Current()

	_, err := s.SelectIndex(len(q.Options))
	assert.Error(t, err)

	fb, err := s.SelectIndex(0)
	require.NoError(t, err)
	assert.Equal(t, q.Options[0], fb.Chosen)
}

func TestSession_UnknownTopic(t *testing.T) {
	s := New(questionbank.Default())

	err := s.Start("Conditionals")
	require.Error(t, err)
	assert.Equal(t, PhaseNoContent, s.Phase())
	assert.Equal(t, "Conditionals", s.Topic())

	var ce *questionbank.ContentError
	require.ErrorAs(t, s.Err(), &ce)
	assert.True(t, errors.Is(err, questionbank.ErrUnknownTopic))
	assert.Equal(t, `We couldn't find an exercise for "Conditionals". Please try another topic.`, NoContentMessage(s.Topic()))

	_, err = s.Select("anything")
	assert.ErrorIs(t, err, ErrNotInProgress)

	s.Reset()
	assert.Equal(t, PhaseTopicSelect, s.Phase())
	assert.NoError(t, s.Err())
}

func TestSession_ResetClearsAnswers(t *testing.T) {
	s := startPastSimple(t)
	q, _ := s.Current()
	_, err := s.Select(q.Answer)
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, PhaseTopicSelect, s.Phase())
	assert.Empty(t, s.Topic())

	require.NoError(t, s.Start("Past Simple"))
	_, ok := s.Feedback()
	assert.False(t, ok)
	correct, _ := s.Score()
	assert.Zero(t, correct)
}

func TestSession_NextOutsideProgress(t *testing.T) {
	s := New(questionbank.Default())
	assert.ErrorIs(t, s.Next(), ErrNotInProgress)
	assert.Len(t, s.Topics(), 5)
}
