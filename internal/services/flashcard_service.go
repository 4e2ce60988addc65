package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbratke/buergertest/internal/bank"
	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/flashcards"
	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/selection"
	"github.com/mbratke/buergertest/internal/session"
)

// FlashcardService handles flashcard-mode business logic
type FlashcardService interface {
	Start(ctx context.Context, stateCode, lang string) (flashcards.View, error)
	Get(ctx context.Context, id, lang string) (flashcards.View, error)
	SelectOption(ctx context.Context, id string, optionID models.OptionID, lang string) (flashcards.View, error)
	Proceed(ctx context.Context, id, lang string) (flashcards.View, error)
	Restart(ctx context.Context, id, lang string) (flashcards.View, error)
	Abandon(ctx context.Context, id string) error
}

type flashcardService struct {
	bank             *bank.Bank
	selector         *selection.Selector
	registry         *session.Registry
	cardTimerSeconds int
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(b *bank.Bank, selector *selection.Selector, registry *session.Registry, cardTimerSeconds int) FlashcardService {
	return &flashcardService{
		bank:             b,
		selector:         selector,
		registry:         registry,
		cardTimerSeconds: cardTimerSeconds,
	}
}

func (s *flashcardService) Start(ctx context.Context, stateCode, lang string) (flashcards.View, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting flashcard session: state=%s", stateCode)

	if stateCode != "" {
		if _, ok := s.bank.StateByCode(stateCode); !ok {
			return flashcards.View{}, errors.NewValidationError("state_code", "unknown state")
		}
	}

	questions := s.selector.ForFlashcards(s.bank, stateCode)
	if len(questions) == 0 {
		return flashcards.View{}, errors.NewValidationError("state_code", "no questions available")
	}

	sess := flashcards.New(uuid.NewString(), stateCode, questions, s.cardTimerSeconds, nil)
	s.registry.PutFlashcards(sess)

	log.Info("flashcard session started: id=%s, state=%s, cards=%d", sess.ID(), stateCode, len(questions))
	return sess.Snapshot(lang), nil
}

func (s *flashcardService) Get(ctx context.Context, id, lang string) (flashcards.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return flashcards.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *flashcardService) SelectOption(ctx context.Context, id string, optionID models.OptionID, lang string) (flashcards.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return flashcards.View{}, err
	}
	if err := sess.SelectOption(optionID); err != nil {
		return flashcards.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *flashcardService) Proceed(ctx context.Context, id, lang string) (flashcards.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return flashcards.View{}, err
	}
	if err := sess.Proceed(); err != nil {
		return flashcards.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *flashcardService) Restart(ctx context.Context, id, lang string) (flashcards.View, error) {
	log := logger.FromContext(ctx)

	sess, err := s.lookup(id)
	if err != nil {
		return flashcards.View{}, err
	}
	if err := sess.Restart(); err != nil {
		return flashcards.View{}, err
	}

	log.Info("flashcard session restarted: id=%s", id)
	return sess.Snapshot(lang), nil
}

func (s *flashcardService) Abandon(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	if !s.registry.RemoveFlashcards(id) {
		return errors.NewNotFoundError("flashcard session", id)
	}
	log.Info("flashcard session abandoned: id=%s", id)
	return nil
}

func (s *flashcardService) lookup(id string) (*flashcards.Session, error) {
	sess, ok := s.registry.Flashcards(id)
	if !ok {
		return nil, errors.NewNotFoundError("flashcard session", id)
	}
	return sess, nil
}
