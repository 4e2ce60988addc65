package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbratke/buergertest/internal/bank"
	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/exam"
	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/repository"
	"github.com/mbratke/buergertest/internal/selection"
	"github.com/mbratke/buergertest/internal/session"
)

// ExamService handles mock-exam business logic
type ExamService interface {
	Start(ctx context.Context, stateCode, lang string) (exam.View, error)
	Get(ctx context.Context, id, lang string) (exam.View, error)
	SelectAnswer(ctx context.Context, id, questionID string, optionID models.OptionID, lang string) (exam.View, error)
	Navigate(ctx context.Context, id string, direction int, lang string) (exam.View, error)
	RequestSubmit(ctx context.Context, id, lang string) (exam.View, error)
	CancelSubmit(ctx context.Context, id, lang string) (exam.View, error)
	ConfirmSubmit(ctx context.Context, id, lang string) (exam.View, error)
	Abandon(ctx context.Context, id string) error
	Session(ctx context.Context, id string) (*exam.Session, error)
}

type examService struct {
	bank        *bank.Bank
	selector    *selection.Selector
	registry    *session.Registry
	attemptRepo repository.AttemptRepository

	durationSeconds    int
	questionCount      int
	stateQuestionCount int
}

// NewExamService creates a new ExamService
func NewExamService(b *bank.Bank, selector *selection.Selector, registry *session.Registry, attemptRepo repository.AttemptRepository, durationSeconds, questionCount, stateQuestionCount int) ExamService {
	return &examService{
		bank:               b,
		selector:           selector,
		registry:           registry,
		attemptRepo:        attemptRepo,
		durationSeconds:    durationSeconds,
		questionCount:      questionCount,
		stateQuestionCount: stateQuestionCount,
	}
}

func (s *examService) Start(ctx context.Context, stateCode, lang string) (exam.View, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting exam session: state=%s", stateCode)

	if _, ok := s.bank.StateByCode(stateCode); !ok {
		return exam.View{}, errors.NewValidationError("state_code", "unknown state")
	}

	questions, err := s.selector.ForExam(s.bank, stateCode, s.questionCount, s.stateQuestionCount)
	if err != nil {
		return exam.View{}, err
	}
	if len(questions) == 0 {
		return exam.View{}, errors.NewValidationError("state_code", "no questions available")
	}

	sess := exam.New(uuid.NewString(), stateCode, questions, s.durationSeconds, 0)
	sess.OnSubmit(func(result *models.ScoredResult) {
		s.persist(context.Background(), sess, result)
	})
	s.registry.PutExam(sess)

	log.Info("exam session started: id=%s, state=%s, questions=%d", sess.ID(), stateCode, len(questions))
	return sess.Snapshot(lang), nil
}

func (s *examService) Get(ctx context.Context, id, lang string) (exam.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return exam.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *examService) SelectAnswer(ctx context.Context, id, questionID string, optionID models.OptionID, lang string) (exam.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return exam.View{}, err
	}
	if err := sess.SelectAnswer(questionID, optionID); err != nil {
		return exam.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *examService) Navigate(ctx context.Context, id string, direction int, lang string) (exam.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return exam.View{}, err
	}
	if err := sess.Navigate(direction); err != nil {
		return exam.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *examService) RequestSubmit(ctx context.Context, id, lang string) (exam.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return exam.View{}, err
	}
	if err := sess.RequestSubmit(); err != nil {
		return exam.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *examService) CancelSubmit(ctx context.Context, id, lang string) (exam.View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return exam.View{}, err
	}
	if err := sess.CancelSubmit(); err != nil {
		return exam.View{}, err
	}
	return sess.Snapshot(lang), nil
}

func (s *examService) ConfirmSubmit(ctx context.Context, id, lang string) (exam.View, error) {
	log := logger.FromContext(ctx)

	sess, err := s.lookup(id)
	if err != nil {
		return exam.View{}, err
	}
	result, err := sess.ConfirmSubmit()
	if err != nil {
		return exam.View{}, err
	}

	log.Info("exam submitted: id=%s, score=%d/%d, passed=%t", id, result.CorrectCount, result.TotalCount, result.Passed)
	return sess.Snapshot(lang), nil
}

func (s *examService) Abandon(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	if !s.registry.RemoveExam(id) {
		return errors.NewNotFoundError("exam session", id)
	}
	log.Info("exam session abandoned: id=%s", id)
	return nil
}

func (s *examService) Session(ctx context.Context, id string) (*exam.Session, error) {
	return s.lookup(id)
}

func (s *examService) lookup(id string) (*exam.Session, error) {
	sess, ok := s.registry.Exam(id)
	if !ok {
		return nil, errors.NewNotFoundError("exam session", id)
	}
	return sess, nil
}

// persist records the finished attempt. A persistence failure does not fail
// the submission; the session already holds the result.
func (s *examService) persist(ctx context.Context, sess *exam.Session, result *models.ScoredResult) {
	log := logger.FromContext(ctx)
	_, err := s.attemptRepo.Insert(ctx, models.Attempt{
		Mode:             models.ModeExam,
		StateCode:        sess.StateCode(),
		TotalCount:       result.TotalCount,
		CorrectCount:     result.CorrectCount,
		ScorePercent:     result.ScorePercent,
		Passed:           result.Passed,
		TimeTakenSeconds: result.TimeTakenSeconds,
	})
	if err != nil {
		log.Error("failed to persist exam attempt: %v", err)
	}
}
