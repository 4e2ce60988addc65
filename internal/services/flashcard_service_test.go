package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/flashcards"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/services"
)

func newFlashcardService() services.FlashcardService {
	return services.NewFlashcardService(testBank(3, 0), testSelector(), testRegistry(), 15)
}

func TestFlashcardService_StartServesFirstCard(t *testing.T) {
	svc := newFlashcardService()

	view, err := svc.Start(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, flashcards.StatusInProgress, view.Status)
	assert.Equal(t, 3, view.RemainingCards)
	assert.Equal(t, flashcards.PhaseAwaitingAnswer, view.Phase)
	require.NotNil(t, view.CurrentCard)
	assert.Empty(t, view.CurrentCard.CorrectOptionID, "correct option must be redacted before the reveal")
}

func TestFlashcardService_WrongAnswerReveals(t *testing.T) {
	svc := newFlashcardService()
	ctx := context.Background()

	view, err := svc.Start(ctx, "", "")
	require.NoError(t, err)

	view, err = svc.SelectOption(ctx, view.ID, models.OptionA, "")
	require.NoError(t, err)
	assert.Equal(t, flashcards.PhaseRevealed, view.Phase)
	require.NotNil(t, view.CurrentCard)
	assert.Equal(t, models.OptionB, view.CurrentCard.CorrectOptionID)

	view, err = svc.Proceed(ctx, view.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, view.RemainingCards)
	assert.Equal(t, flashcards.PhaseAwaitingAnswer, view.Phase)
}

func TestFlashcardService_RestartRefillsPool(t *testing.T) {
	svc := newFlashcardService()
	ctx := context.Background()

	view, err := svc.Start(ctx, "", "")
	require.NoError(t, err)

	_, err = svc.SelectOption(ctx, view.ID, models.OptionA, "")
	require.NoError(t, err)
	_, err = svc.Proceed(ctx, view.ID, "")
	require.NoError(t, err)

	view, err = svc.Restart(ctx, view.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 3, view.RemainingCards)
	assert.Equal(t, flashcards.StatusInProgress, view.Status)
}

func TestFlashcardService_UnknownSession(t *testing.T) {
	svc := newFlashcardService()

	_, err := svc.Get(context.Background(), "missing", "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}
