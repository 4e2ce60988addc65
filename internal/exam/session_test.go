package exam_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/exam"
	"github.com/mbratke/buergertest/internal/models"
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
		Explanation:     "weil es so ist",
	}
}

func newSession(n int, duration int) *exam.Session {
	var qs []models.Question
	for i := 0; i < n; i++ {
		qs = append(qs, question(fmt.Sprintf("q%d", i+1), models.OptionA))
	}
	return exam.New("sess-1", "BW", qs, duration, 17.0/33.0)
}

func TestNew_InitialState(t *testing.T) {
	s := newSession(3, 3600)

	assert.Equal(t, exam.StatusInProgress, s.Status())
	assert.Equal(t, 3600, s.TimeRemaining())
	assert.Equal(t, 3, s.UnansweredCount())

	view := s.Snapshot("")
	assert.Equal(t, 0, view.Cursor)
	assert.Empty(t, view.Answers)
}

func TestSelectAnswer_Overwrites(t *testing.T) {
	s := newSession(3, 3600)

	require.NoError(t, s.SelectAnswer("q1", models.OptionB))
	require.NoError(t, s.SelectAnswer("q1", models.OptionC))

	view := s.Snapshot("")
	assert.Equal(t, models.OptionC, view.Answers["q1"], "a second answer overwrites the first")
	assert.Equal(t, 1, view.AnsweredCount)
	assert.Equal(t, 2, view.UnansweredCount)
}

func TestSelectAnswer_Validation(t *testing.T) {
	s := newSession(3, 3600)

	err := s.SelectAnswer("q1", "z")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))

	err = s.SelectAnswer("unknown", models.OptionA)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestNavigate_ClampsAtBoundaries(t *testing.T) {
	s := newSession(3, 3600)

	// Backwards from the first question is a silent no-op.
	require.NoError(t, s.Navigate(-1))
	assert.Equal(t, 0, s.Snapshot("").Cursor)

	require.NoError(t, s.Navigate(1))
	require.NoError(t, s.Navigate(1))
	assert.Equal(t, 2, s.Snapshot("").Cursor)

	// Forwards past the last question is a silent no-op.
	require.NoError(t, s.Navigate(1))
	assert.Equal(t, 2, s.Snapshot("").Cursor)
}

func TestNavigate_InvalidDirection(t *testing.T) {
	s := newSession(3, 3600)

	err := s.Navigate(2)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestSubmitFlow_RequestCancelConfirm(t *testing.T) {
	s := newSession(3, 3600)

	require.NoError(t, s.RequestSubmit())
	assert.Equal(t, exam.StatusAwaitingConfirmation, s.Status())

	require.NoError(t, s.CancelSubmit())
	assert.Equal(t, exam.StatusInProgress, s.Status())

	require.NoError(t, s.SelectAnswer("q1", models.OptionA))
	require.NoError(t, s.RequestSubmit())

	result, err := s.ConfirmSubmit()
	require.NoError(t, err)
	assert.Equal(t, exam.StatusSubmitted, s.Status())
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 3, result.TotalCount)
}

func TestConfirmSubmit_DirectFromInProgress(t *testing.T) {
	s := newSession(3, 3600)

	result, err := s.ConfirmSubmit()
	require.NoError(t, err)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, exam.StatusSubmitted, s.Status())
}

func TestTimer_AutoSubmitAfterDurationTicks(t *testing.T) {
	duration := 60
	s := newSession(3, duration)
	require.NoError(t, s.SelectAnswer("q1", models.OptionA))

	for i := 0; i < duration; i++ {
		s.Tick()
	}

	assert.Equal(t, exam.StatusSubmitted, s.Status())
	result, _ := s.Result()
	require.NotNil(t, result)
	assert.Equal(t, duration, result.TimeTakenSeconds)
	assert.Equal(t, 1, result.CorrectCount)
}

func TestTimer_ExtraTicksAreIdempotent(t *testing.T) {
	duration := 5
	s := newSession(2, duration)

	for i := 0; i < duration+10; i++ {
		s.Tick()
	}

	assert.Equal(t, exam.StatusSubmitted, s.Status())
	result, _ := s.Result()
	require.NotNil(t, result)
	assert.Equal(t, duration, result.TimeTakenSeconds, "ticks after zero must not change the result")
	assert.Equal(t, 0, s.TimeRemaining())
}

func TestTimer_KeepsRunningDuringConfirmation(t *testing.T) {
	s := newSession(2, 10)
	require.NoError(t, s.RequestSubmit())

	for i := 0; i < 10; i++ {
		s.Tick()
	}

	assert.Equal(t, exam.StatusSubmitted, s.Status(), "timeout during the confirmation prompt still submits")
}

func TestMutationsAfterSubmitAreRejected(t *testing.T) {
	s := newSession(3, 3600)
	_, err := s.ConfirmSubmit()
	require.NoError(t, err)

	err = s.SelectAnswer("q1", models.OptionA)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))

	err = s.Navigate(1)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))

	err = s.RequestSubmit()
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))

	err = s.CancelSubmit()
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))

	_, err = s.ConfirmSubmit()
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))
}

func TestFullDurationTimeout_ThenMutationRejected(t *testing.T) {
	duration := 3600
	s := newSession(33, duration)

	for i := 0; i < duration; i++ {
		s.Tick()
	}

	assert.Equal(t, exam.StatusSubmitted, s.Status())
	err := s.SelectAnswer("q1", models.OptionA)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))
}

func TestSnapshot_RedactsBeforeSubmission(t *testing.T) {
	s := newSession(2, 3600)

	view := s.Snapshot("")
	for _, q := range view.Questions {
		assert.Empty(t, q.CorrectOptionID, "correct option must not leak before submission")
		assert.Empty(t, q.Explanation)
	}

	_, err := s.ConfirmSubmit()
	require.NoError(t, err)

	view = s.Snapshot("")
	for _, q := range view.Questions {
		assert.NotEmpty(t, q.CorrectOptionID)
	}
	require.Len(t, view.Outcomes, 2)
}
