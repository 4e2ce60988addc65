package practice_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/practice"
)

func question(id string, correct models.OptionID) models.Question {
	return models.Question{
		ID:   id,
		Text: "Frage " + id,
		Options: []models.Option{
			{ID: models.OptionA, Text: "A"},
			{ID: models.OptionB, Text: "B"},
			{ID: models.OptionC, Text: "C"},
			{ID: models.OptionD, Text: "D"},
		},
		CorrectOptionID: correct,
		Explanation:     "Begründung zu " + id,
	}
}

func newSession(n int) *practice.Session {
	var qs []models.Question
	for i := 0; i < n; i++ {
		qs = append(qs, question(fmt.Sprintf("q%d", i+1), models.OptionA))
	}
	return practice.New("pract-1", "", qs)
}

func TestAnswer_ImmediateFeedback(t *testing.T) {
	s := newSession(3)

	fb, err := s.Answer("q1", models.OptionA)
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.Equal(t, models.OptionA, fb.CorrectOptionID)
	assert.NotEmpty(t, fb.Explanation)
	assert.False(t, fb.AlreadyAnswered)

	fb, err = s.Answer("q2", models.OptionB)
	require.NoError(t, err)
	assert.False(t, fb.Correct)
}

func TestAnswer_FirstAnswerLocks(t *testing.T) {
	s := newSession(2)

	_, err := s.Answer("q1", models.OptionB)
	require.NoError(t, err)

	// Second answer is a no-op replaying the recorded outcome.
	fb, err := s.Answer("q1", models.OptionA)
	require.NoError(t, err)
	assert.True(t, fb.AlreadyAnswered)
	assert.Equal(t, models.OptionB, fb.ChosenOptionID, "the locked answer wins")
	assert.False(t, fb.Correct)

	view := s.Snapshot("")
	assert.Equal(t, models.OptionB, view.Answers["q1"])
}

func TestAnswer_UnknownQuestion(t *testing.T) {
	s := newSession(2)

	_, err := s.Answer("nope", models.OptionA)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestAnsweringEverythingCompletes(t *testing.T) {
	s := newSession(2)

	_, err := s.Answer("q1", models.OptionA)
	require.NoError(t, err)
	assert.Equal(t, practice.StatusInProgress, s.Status())

	_, err = s.Answer("q2", models.OptionC)
	require.NoError(t, err)
	assert.Equal(t, practice.StatusComplete, s.Status())

	result := s.Result()
	require.NotNil(t, result)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalCount)
}

func TestFinish_EarlyScoresPartialAnswers(t *testing.T) {
	s := newSession(3)

	_, err := s.Answer("q1", models.OptionA)
	require.NoError(t, err)

	result, err := s.Finish()
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, practice.StatusComplete, s.Status())
}

func TestMutationsAfterCompleteAreRejected(t *testing.T) {
	s := newSession(1)
	_, err := s.Answer("q1", models.OptionA)
	require.NoError(t, err)
	require.Equal(t, practice.StatusComplete, s.Status())

	_, err = s.Answer("q1", models.OptionB)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))

	err = s.Navigate(1)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))

	_, err = s.Finish()
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))
}

func TestNavigate_Clamps(t *testing.T) {
	s := newSession(2)

	require.NoError(t, s.Navigate(-1))
	assert.Equal(t, 0, s.Snapshot("").Cursor)

	require.NoError(t, s.Navigate(1))
	require.NoError(t, s.Navigate(1))
	assert.Equal(t, 1, s.Snapshot("").Cursor)
}

func TestSnapshot_RedactsOnlyOpenQuestions(t *testing.T) {
	s := newSession(2)
	_, err := s.Answer("q1", models.OptionB)
	require.NoError(t, err)

	view := s.Snapshot("")
	for _, q := range view.Questions {
		if q.ID == "q1" {
			assert.NotEmpty(t, q.CorrectOptionID, "answered question is revealed")
		} else {
			assert.Empty(t, q.CorrectOptionID, "open question stays redacted")
		}
	}
	assert.Equal(t, 0, view.CorrectCount)
	assert.Equal(t, 1, view.AnsweredCount)
}
