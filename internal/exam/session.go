// Package exam implements the timed mock-exam session state machine. The
// session owns the countdown, the cursor and the answer map; the hosting
// environment drives the clock by calling Tick once per second and stops
// calling it on teardown.
package exam

import (
	"sync"
	"time"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/scoring"
)

// Status is the lifecycle state of an exam session.
type Status string

const (
	StatusInProgress           Status = "in_progress"
	StatusAwaitingConfirmation Status = "awaiting_submit_confirmation"
	StatusSubmitted            Status = "submitted"
)

// Session is one exam attempt. A retry is always a fresh Session; there is no
// transition out of StatusSubmitted. All methods are safe for concurrent use
// so the clock goroutine and the API can share the session.
type Session struct {
	mu sync.Mutex

	id           string
	stateCode    string
	questions    []models.Question
	answers      map[string]models.OptionID
	cursor       int
	duration     int
	remaining    int
	status       Status
	passFraction float64

	result       *models.ScoredResult
	outcomes     []models.QuestionOutcome
	lastActivity time.Time
	onSubmit     func(*models.ScoredResult)
}

// New creates an exam session over a fixed question list with a countdown of
// durationSeconds.
func New(id, stateCode string, questions []models.Question, durationSeconds int, passFraction float64) *Session {
	if durationSeconds <= 0 {
		durationSeconds = 3600
	}
	if passFraction <= 0 {
		passFraction = scoring.PassFraction
	}
	return &Session{
		id:           id,
		stateCode:    stateCode,
		questions:    questions,
		answers:      map[string]models.OptionID{},
		duration:     durationSeconds,
		remaining:    durationSeconds,
		status:       StatusInProgress,
		passFraction: passFraction,
		lastActivity: time.Now(),
	}
}

// OnSubmit registers a callback invoked exactly once when the session reaches
// StatusSubmitted, whether by confirmation or by the clock running out. The
// callback runs on its own goroutine so it may block.
func (s *Session) OnSubmit(fn func(*models.ScoredResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSubmit = fn
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// StateCode returns the federal state this exam was drawn for.
func (s *Session) StateCode() string { return s.stateCode }

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SelectAnswer records (or overwrites) the chosen option for a question. The
// exam flow allows changing an answer any time before submission.
func (s *Session) SelectAnswer(questionID string, optionID models.OptionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitted {
		return errors.NewInvalidStateError("select answer", string(s.status))
	}
	if !optionID.Valid() {
		return errors.NewValidationError("option_id", "must be one of a, b, c, d")
	}
	if !s.hasQuestion(questionID) {
		return errors.NewValidationError("question_id", "not part of this session")
	}

	s.answers[questionID] = optionID
	s.touch()
	return nil
}

// Navigate moves the cursor one step. Moves past either boundary are silent
// no-ops; the UI disables the button rather than showing an error.
func (s *Session) Navigate(direction int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitted {
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

// RequestSubmit opens the confirmation step. Requesting again while already
// awaiting confirmation is a no-op.
func (s *Session) RequestSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitted {
		return errors.NewInvalidStateError("request submit", string(s.status))
	}
	s.status = StatusAwaitingConfirmation
	s.touch()
	return nil
}

// CancelSubmit returns from the confirmation step to the running exam.
func (s *Session) CancelSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitted {
		return errors.NewInvalidStateError("cancel submit", string(s.status))
	}
	s.status = StatusInProgress
	s.touch()
	return nil
}

// ConfirmSubmit finalizes the exam with the answers as they stand and stops
// the clock. Further mutations are rejected.
func (s *Session) ConfirmSubmit() (*models.ScoredResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitted {
		return nil, errors.NewInvalidStateError("confirm submit", string(s.status))
	}
	s.finalize()
	return s.result, nil
}

// Tick advances the countdown by one second. When the countdown reaches zero
// the session submits itself with the answers recorded so far. A tick landing
// on an already-submitted session is a no-op, so a stale timer can never
// double-submit. The confirmation prompt does not pause the clock.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSubmitted {
		return
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.finalize()
	}
}

// finalize must be called with the lock held.
func (s *Session) finalize() {
	result := scoring.Score(s.questions, s.answers, s.passFraction)
	result.TimeTakenSeconds = s.duration - s.remaining
	s.result = &result
	s.outcomes = scoring.Outcomes(s.questions, s.answers)
	s.status = StatusSubmitted
	s.touch()
	if s.onSubmit != nil {
		go s.onSubmit(s.result)
	}
}

// Result returns the scored result and per-question outcomes, nil before
// submission.
func (s *Session) Result() (*models.ScoredResult, []models.QuestionOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.outcomes
}

// UnansweredCount is shown in the submit confirmation prompt. It never blocks
// submission.
func (s *Session) UnansweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions) - len(s.answers)
}

// TimeRemaining returns the countdown value in seconds.
func (s *Session) TimeRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// IdleSince reports the time of the last user-driven action, used by the
// registry to evict abandoned sessions.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// touch must be called with the lock held.
func (s *Session) touch() {
	s.lastActivity = time.Now()
}

func (s *Session) hasQuestion(id string) bool {
	for _, q := range s.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// View is the client-facing snapshot of a session. Correct options and
// explanations are only included after submission.
type View struct {
	ID                   string                   `json:"id"`
	Status               Status                   `json:"status"`
	StateCode            string                   `json:"state_code"`
	Cursor               int                      `json:"cursor"`
	TimeRemainingSeconds int                      `json:"time_remaining_seconds"`
	TotalCount           int                      `json:"total_count"`
	AnsweredCount        int                      `json:"answered_count"`
	UnansweredCount      int                      `json:"unanswered_count"`
	Questions            []models.Question        `json:"questions"`
	Answers              map[string]models.OptionID `json:"answers"`
	Result               *models.ScoredResult     `json:"result,omitempty"`
	Outcomes             []models.QuestionOutcome `json:"outcomes,omitempty"`
}

// Snapshot renders the session for a client, localized to lang. Before
// submission every question is redacted.
func (s *Session) Snapshot(lang string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		q = q.Localized(lang)
		if s.status != StatusSubmitted {
			q = q.Redacted()
		}
		questions = append(questions, q)
	}

	answers := make(map[string]models.OptionID, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}

	return View{
		ID:                   s.id,
		Status:               s.status,
		StateCode:            s.stateCode,
		Cursor:               s.cursor,
		TimeRemainingSeconds: s.remaining,
		TotalCount:           len(s.questions),
		AnsweredCount:        len(s.answers),
		UnansweredCount:      len(s.questions) - len(s.answers),
		Questions:            questions,
		Answers:              answers,
		Result:               s.result,
		Outcomes:             s.outcomes,
	}
}
