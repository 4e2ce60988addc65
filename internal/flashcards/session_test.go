package flashcards_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/flashcards"
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
	}
}

func newSession(n int, timer int) *flashcards.Session {
	var qs []models.Question
	for i := 0; i < n; i++ {
		qs = append(qs, question(fmt.Sprintf("q%d", i+1), models.OptionA))
	}
	return flashcards.New("cards-1", "", qs, timer, rand.New(rand.NewSource(7)))
}

func currentCardID(t *testing.T, s *flashcards.Session) string {
	t.Helper()
	view := s.Snapshot("")
	require.NotNil(t, view.CurrentCard)
	return view.CurrentCard.ID
}

func TestCorrectAnswer_RemovesCardAfterFeedbackDelay(t *testing.T) {
	s := newSession(2, 15)
	first := currentCardID(t, s)

	require.NoError(t, s.SelectOption(models.OptionA))
	view := s.Snapshot("")
	assert.Equal(t, flashcards.PhaseCorrectPending, view.Phase)
	assert.Equal(t, 2, view.RemainingCards, "removal waits for the feedback delay")

	// Feedback delay is two ticks.
	s.Tick()
	s.Tick()

	view = s.Snapshot("")
	assert.Equal(t, 1, view.RemainingCards)
	assert.Equal(t, flashcards.PhaseAwaitingAnswer, view.Phase)
	require.NotNil(t, view.CurrentCard)
	assert.NotEqual(t, first, view.CurrentCard.ID, "a correctly answered card never comes back")
}

func TestWrongAnswer_RevealsAndWaitsForProceed(t *testing.T) {
	s := newSession(2, 15)

	require.NoError(t, s.SelectOption(models.OptionB))
	view := s.Snapshot("")
	assert.Equal(t, flashcards.PhaseRevealed, view.Phase)
	require.NotNil(t, view.CurrentCard)
	assert.Equal(t, models.OptionA, view.CurrentCard.CorrectOptionID, "reveal shows the solution")

	// The reveal holds until the user proceeds, ticks do not advance it.
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	assert.Equal(t, 2, s.Remaining())

	require.NoError(t, s.Proceed())
	assert.Equal(t, 1, s.Remaining())
}

func TestTimeout_BehavesLikeWrongAnswer(t *testing.T) {
	s := newSession(2, 5)

	for i := 0; i < 5; i++ {
		s.Tick()
	}

	view := s.Snapshot("")
	assert.Equal(t, flashcards.PhaseRevealed, view.Phase)
	assert.True(t, view.TimedOut)
	require.NotNil(t, view.CurrentCard)
	assert.NotEmpty(t, view.CurrentCard.CorrectOptionID)

	require.NoError(t, s.Proceed())
	assert.Equal(t, 1, s.Remaining())
	assert.Equal(t, 5, s.Snapshot("").CardTimerSeconds, "next card gets a fresh timer")
}

func TestSecondSelectOptionIsNoOp(t *testing.T) {
	s := newSession(2, 15)

	require.NoError(t, s.SelectOption(models.OptionB))
	// The card is revealed; another answer must not change anything.
	require.NoError(t, s.SelectOption(models.OptionA))

	view := s.Snapshot("")
	assert.Equal(t, flashcards.PhaseRevealed, view.Phase)
	assert.Equal(t, models.OptionB, view.ChosenOptionID, "the first resolution stands")
}

func TestProceedBeforeAnswerIsNoOp(t *testing.T) {
	s := newSession(2, 15)

	require.NoError(t, s.Proceed())
	assert.Equal(t, 2, s.Remaining())
	assert.Equal(t, flashcards.PhaseAwaitingAnswer, s.Snapshot("").Phase)
}

func TestTwoCardScenario(t *testing.T) {
	// Correct on card 1 removes it after the delay and presents card 2;
	// wrong on card 2 reveals and needs an explicit proceed to complete.
	s := newSession(2, 15)

	require.NoError(t, s.SelectOption(models.OptionA))
	s.Tick()
	s.Tick()
	require.Equal(t, 1, s.Remaining())

	require.NoError(t, s.SelectOption(models.OptionC))
	assert.Equal(t, flashcards.PhaseRevealed, s.Snapshot("").Phase)
	assert.Equal(t, flashcards.StatusInProgress, s.Status())

	require.NoError(t, s.Proceed())
	assert.Equal(t, flashcards.StatusComplete, s.Status())
	assert.Equal(t, 0, s.Remaining())
}

func TestMutationsAfterCompleteAreRejected(t *testing.T) {
	s := newSession(1, 15)
	require.NoError(t, s.SelectOption(models.OptionB))
	require.NoError(t, s.Proceed())
	require.Equal(t, flashcards.StatusComplete, s.Status())

	err := s.SelectOption(models.OptionA)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))

	err = s.Proceed()
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidState))
}

func TestTicksAfterCompleteAreNoOps(t *testing.T) {
	s := newSession(1, 15)
	require.NoError(t, s.SelectOption(models.OptionB))
	require.NoError(t, s.Proceed())

	// A stale timer must not crash or resurrect the session.
	for i := 0; i < 20; i++ {
		s.Tick()
	}
	assert.Equal(t, flashcards.StatusComplete, s.Status())
}

func TestRestart_ReshufflesOriginalList(t *testing.T) {
	s := newSession(3, 15)

	// Burn through two cards.
	require.NoError(t, s.SelectOption(models.OptionB))
	require.NoError(t, s.Proceed())
	require.NoError(t, s.SelectOption(models.OptionB))
	require.NoError(t, s.Proceed())
	require.Equal(t, 1, s.Remaining())

	require.NoError(t, s.Restart())
	assert.Equal(t, flashcards.StatusInProgress, s.Status())
	assert.Equal(t, 3, s.Remaining())
	assert.Equal(t, flashcards.PhaseAwaitingAnswer, s.Snapshot("").Phase)
}

func TestRestart_AllowedAfterComplete(t *testing.T) {
	s := newSession(1, 15)
	require.NoError(t, s.SelectOption(models.OptionB))
	require.NoError(t, s.Proceed())
	require.Equal(t, flashcards.StatusComplete, s.Status())

	require.NoError(t, s.Restart())
	assert.Equal(t, flashcards.StatusInProgress, s.Status())
	assert.Equal(t, 1, s.Remaining())
}

func TestSnapshot_RedactsUnresolvedCard(t *testing.T) {
	s := newSession(1, 15)

	view := s.Snapshot("")
	require.NotNil(t, view.CurrentCard)
	assert.Empty(t, view.CurrentCard.CorrectOptionID, "solution must not leak before the card is resolved")

	require.NoError(t, s.SelectOption(models.OptionA))
	view = s.Snapshot("")
	require.NotNil(t, view.CurrentCard)
	assert.NotEmpty(t, view.CurrentCard.CorrectOptionID)
}

func TestEmptySelectionCompletesImmediately(t *testing.T) {
	s := flashcards.New("cards-empty", "", nil, 15, rand.New(rand.NewSource(1)))
	assert.Equal(t, flashcards.StatusComplete, s.Status())
	assert.Nil(t, s.Snapshot("").CurrentCard)
}
