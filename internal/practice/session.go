// Package practice implements the untimed practice session. Unlike the exam
// flow, feedback is immediate and the first answer to a question locks it.
package practice

import (
	"sync"
	"time"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/scoring"
)

// Status is the lifecycle state of a practice session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Feedback is returned for every answer so the client can reveal the outcome
// immediately.
type Feedback struct {
	QuestionID      string          `json:"question_id"`
	ChosenOptionID  models.OptionID `json:"chosen_option_id"`
	CorrectOptionID models.OptionID `json:"correct_option_id"`
	Correct         bool            `json:"correct"`
	Explanation     string          `json:"explanation,omitempty"`
	// AlreadyAnswered marks the no-op case: the question was locked by an
	// earlier answer and the recorded outcome is returned unchanged.
	AlreadyAnswered bool `json:"already_answered"`
}

// Session is one practice run over a fixed question list.
type Session struct {
	mu sync.Mutex

	id           string
	stateCode    string
	questions    []models.Question
	byID         map[string]models.Question
	answers      map[string]models.OptionID
	cursor       int
	status       Status
	startedAt    time.Time
	result       *models.ScoredResult
	lastActivity time.Time
}

// New creates a practice session.
func New(id, stateCode string, questions []models.Question) *Session {
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	now := time.Now()
	return &Session{
		id:           id,
		stateCode:    stateCode,
		questions:    questions,
		byID:         byID,
		answers:      map[string]models.OptionID{},
		status:       StatusInProgress,
		startedAt:    now,
		lastActivity: now,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// StateCode returns the state scope the session was selected for.
func (s *Session) StateCode() string { return s.stateCode }

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Answer records the choice for a question and returns immediate feedback.
// The first answer locks the question: answering it again is a no-op that
// replays the recorded outcome. Answering the last open question completes
// the session.
func (s *Session) Answer(questionID string, optionID models.OptionID) (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusComplete {
		return Feedback{}, errors.NewInvalidStateError("answer", string(s.status))
	}
	q, ok := s.byID[questionID]
	if !ok {
		return Feedback{}, errors.NewValidationError("question_id", "not part of this session")
	}

	if recorded, answered := s.answers[questionID]; answered {
		return Feedback{
			QuestionID:      questionID,
			ChosenOptionID:  recorded,
			CorrectOptionID: q.CorrectOptionID,
			Correct:         recorded == q.CorrectOptionID,
			Explanation:     q.Explanation,
			AlreadyAnswered: true,
		}, nil
	}

	if !optionID.Valid() {
		return Feedback{}, errors.NewValidationError("option_id", "must be one of a, b, c, d")
	}

	s.answers[questionID] = optionID
	s.touch()
	if len(s.answers) == len(s.questions) {
		s.complete()
	}

	return Feedback{
		QuestionID:      questionID,
		ChosenOptionID:  optionID,
		CorrectOptionID: q.CorrectOptionID,
		Correct:         optionID == q.CorrectOptionID,
		Explanation:     q.Explanation,
	}, nil
}

// Navigate moves the cursor one step, clamped to the question list.
func (s *Session) Navigate(direction int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusComplete {
		return errors.NewInvalidStateError("navigate", string(s.status))
	}
	if direction != -1 && direction != 1 {
		return errors.NewValidationError("direction", "must be -1 or +1")
	}

	next := s.cursor + direction
	if next >= 0 && next < len(s.questions) {
		s.cursor = next
	}
	s.touch()
	return nil
}

// Finish ends the session early and scores whatever has been answered.
func (s *Session) Finish() (*models.ScoredResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusComplete {
		return nil, errors.NewInvalidStateError("finish", string(s.status))
	}
	s.complete()
	return s.result, nil
}

// complete must be called with the lock held.
func (s *Session) complete() {
	result := scoring.Score(s.questions, s.answers, scoring.PassFraction)
	result.TimeTakenSeconds = int(time.Since(s.startedAt).Seconds())
	s.result = &result
	s.status = StatusComplete
	s.touch()
}

// Result returns the scored result, nil while the session is running.
func (s *Session) Result() *models.ScoredResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// IdleSince reports the last user-driven action for registry eviction.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// touch must be called with the lock held.
func (s *Session) touch() {
	s.lastActivity = time.Now()
}

// View is the client-facing snapshot. Answered questions keep their correct
// option and explanation visible; open ones are redacted.
type View struct {
	ID            string                     `json:"id"`
	Status        Status                     `json:"status"`
	StateCode     string                     `json:"state_code"`
	Cursor        int                        `json:"cursor"`
	TotalCount    int                        `json:"total_count"`
	AnsweredCount int                        `json:"answered_count"`
	CorrectCount  int                        `json:"correct_count"`
	Questions     []models.Question          `json:"questions"`
	Answers       map[string]models.OptionID `json:"answers"`
	Result        *models.ScoredResult       `json:"result,omitempty"`
}

// Snapshot renders the session for a client, localized to lang.
func (s *Session) Snapshot(lang string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	correct := 0
	questions := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		chosen, answered := s.answers[q.ID]
		if answered && chosen == q.CorrectOptionID {
			correct++
		}
		q = q.Localized(lang)
		if !answered {
			q = q.Redacted()
		}
		questions = append(questions, q)
	}

	answers := make(map[string]models.OptionID, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}

	return View{
		ID:            s.id,
		Status:        s.status,
		StateCode:     s.stateCode,
		Cursor:        s.cursor,
		TotalCount:    len(s.questions),
		AnsweredCount: len(s.answers),
		CorrectCount:  correct,
		Questions:     questions,
		Answers:       answers,
		Result:        s.result,
	}
}
