package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbratke/buergertest/internal/bank"
	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/practice"
	"github.com/mbratke/buergertest/internal/repository"
	"github.com/mbratke/buergertest/internal/selection"
	"github.com/mbratke/buergertest/internal/session"
)

// PracticeService handles practice-mode business logic
type PracticeService interface {
	Start(ctx context.Context, stateCode, lang string) (practice.View, error)
	Get(ctx context.Context, id, lang string) (practice.View, error)
	Answer(ctx context.Context, id, questionID string, optionID models.OptionID, lang string) (practice.Feedback, practice.View, error)
	Navigate(ctx context.Context, id string, direction int, lang string) (practice.View, error)
	Finish(ctx context.Context, id, lang string) (practice.View, error)
	Abandon(ctx context.Context, id string) error
}

type practiceService struct {
	bank        *bank.Bank
	selector    *selection.Selector
	registry    *session.Registry
	attemptRepo repository.AttemptRepository
}

// NewPracticeService creates a new PracticeService
func NewPracticeService(b *bank.Bank, selector *selection.Selector, registry *session.Registry, attemptRepo repository.AttemptRepository) PracticeService {
	return &practiceService{
		bank:        b,
		selector:    selector,
		registry:    registry,
		attemptRepo: attemptRepo,
	}
}

func (s *practiceService) Start(ctx context.Context, stateCode, lang string) (practice.View, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting practice session: state=%s", stateCode)

	if stateCode != "" {
		if _, ok := s.bank.StateByCode(stateCode); !ok {
			return practice.View{}, errors.NewValidationError("state_code", "unknown state")
		}
	}

	questions := s.selector.ForPractice(s.bank, stateCode)
	if len(questions) == 0 {
		return practice.View{}, errors.NewValidationError("state_code", "no questions available")
	}

	sess := practice.New(uuid.NewString(), stateCode, questions)
	s.registry.PutPractice(sess)

	log.Info("practice session started: id=%s, state=%s, questions=%d", sess.ID(), stateCode, len(questions))
	return sess.Snapshot(lang), nil
}

func (s *practiceService) Get(ctx context.Context, id, lang string) (practice.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return practice.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *practiceService) Answer(ctx context.Context, id, questionID string, optionID models.OptionID, lang string) (practice.Feedback, practice.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return practice.Feedback{}, practice.View{}, err
	}

	wasComplete := sess.Status() == practice.StatusComplete
	feedback, err := sess.Answer(questionID, optionID)
	if err != nil {
		return practice.Feedback{}, practice.View{}, err
	}

	// Answering the last open question completes the session.
	if !wasComplete && sess.Status() == practice.StatusComplete {
		s.persist(ctx, sess)
	}
	return feedback, sess.Snapshot(lang), nil
}

func (s *practiceService) Navigate(ctx context.Context, id string, direction int, lang string) (practice.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return practice.View{}, err
	}
	if err := sess.Navigate(direction); err != nil {
		return practice.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *practiceService) Finish(ctx context.Context, id, lang string) (practice.View, error) {
	log := logger.FromContext(ctx)

	sess, err := s.lookup(id)
	if err != nil {
		return practice.View{}, err
	}
	result, err := sess.Finish()
	if err != nil {
		return practice.View{}, err
	}
	s.persist(ctx, sess)

	log.Info("practice finished: id=%s, score=%d/%d", id, result.CorrectCount, result.TotalCount)
	return sess.Snapshot(lang), nil
}

func (s *practiceService) Abandon(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	if !s.registry.RemovePractice(id) {
		return errors.NewNotFoundError("practice session", id)
	}
	log.Info("practice session abandoned: id=%s", id)
	return nil
}

func (s *practiceService) lookup(id string) (*practice.Session, error) {
	sess, ok := s.registry.Practice(id)
	if !ok {
		return nil, errors.NewNotFoundError("practice session", id)
	}
	return sess, nil
}

func (s *practiceService) persist(ctx context.Context, sess *practice.Session) {
	log := logger.FromContext(ctx)
	result := sess.Result()
	if result == nil {
		return
	}
	_, err := s.attemptRepo.Insert(ctx, models.Attempt{
		Mode:             models.ModePractice,
		StateCode:        sess.StateCode(),
		TotalCount:       result.TotalCount,
		CorrectCount:     result.CorrectCount,
		ScorePercent:     result.ScorePercent,
		Passed:           result.Passed,
		TimeTakenSeconds: result.TimeTakenSeconds,
	})
	if err != nil {
		log.Error("failed to persist practice attempt: %v", err)
	}
}
