// Package flashcards implements the flashcard drill. The session works on a
// shrinking working copy of the selected question list: correctly answered
// cards leave the pool after a short feedback pause, wrong or timed-out cards
// leave it when the user explicitly proceeds. The original selection is never
// mutated so a restart can reshuffle it.
package flashcards

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/models"
)

// Status is the lifecycle state of a flashcard session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Phase describes where the current card is in its own little lifecycle.
type Phase string

const (
	// PhaseAwaitingAnswer counts the card timer down; reaching zero behaves
	// like a wrong answer.
	PhaseAwaitingAnswer Phase = "awaiting_answer"
	// PhaseCorrectPending shows the "Richtig!" feedback; the card is removed
	// and the next one presented after a short delay.
	PhaseCorrectPending Phase = "correct_pending"
	// PhaseRevealed shows the correct option after a wrong answer or timeout
	// and waits for an explicit proceed.
	PhaseRevealed Phase = "revealed"
)

// feedbackDelayTicks is how many clock ticks the "correct" feedback stays on
// screen before the card auto-advances.
const feedbackDelayTicks = 2

// Session is one flashcard run.
type Session struct {
	mu sync.Mutex

	id        string
	stateCode string
	original  []models.Question
	pool      []models.Question
	current   int
	phase     Phase
	status    Status

	cardTimerSeconds int
	cardTimer        int
	feedbackDelay    int
	chosen           models.OptionID
	timedOut         bool

	rng          *rand.Rand
	lastActivity time.Time
}

// New creates a flashcard session over an already-shuffled question list. The
// rng picks the next card from the pool; nil gets a time-seeded one.
func New(id, stateCode string, questions []models.Question, cardTimerSeconds int, rng *rand.Rand) *Session {
	if cardTimerSeconds <= 0 {
		cardTimerSeconds = 15
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	original := make([]models.Question, len(questions))
	copy(original, questions)
	pool := make([]models.Question, len(questions))
	copy(pool, questions)

	s := &Session{
		id:               id,
		stateCode:        stateCode,
		original:         original,
		pool:             pool,
		phase:            PhaseAwaitingAnswer,
		status:           StatusInProgress,
		cardTimerSeconds: cardTimerSeconds,
		cardTimer:        cardTimerSeconds,
		rng:              rng,
		lastActivity:     time.Now(),
	}
	if len(pool) == 0 {
		s.status = StatusComplete
	}
	return s
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

// SelectOption answers the current card. A correct choice schedules the card
// for removal after the feedback delay; a wrong one reveals the solution and
// waits for Proceed. Answering a card that is already resolved is a no-op.
func (s *Session) SelectOption(optionID models.OptionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusComplete {
		return errors.NewInvalidStateError("select option", string(s.status))
	}
	if s.phase != PhaseAwaitingAnswer {
		// Card already answered or revealed; the first resolution stands.
		return nil
	}
	if !optionID.Valid() {
		return errors.NewValidationError("option_id", "must be one of a, b, c, d")
	}

	s.chosen = optionID
	s.touch()
	if optionID == s.pool[s.current].CorrectOptionID {
		s.phase = PhaseCorrectPending
		s.feedbackDelay = feedbackDelayTicks
	} else {
		s.phase = PhaseRevealed
	}
	return nil
}

// Proceed removes the current card and presents the next one, chosen
// uniformly at random from the remaining pool. With the pool empty the
// session completes. Proceeding on a card that has not been resolved yet is a
// no-op.
func (s *Session) Proceed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusComplete {
		return errors.NewInvalidStateError("proceed", string(s.status))
	}
	if s.phase == PhaseAwaitingAnswer {
		return nil
	}
	s.advance()
	s.touch()
	return nil
}

// Restart throws the working copy away, reshuffles the original list and
// starts over at the first card.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pool = make([]models.Question, len(s.original))
	copy(s.pool, s.original)
	s.rng.Shuffle(len(s.pool), func(i, j int) {
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	})
	s.current = 0
	s.phase = PhaseAwaitingAnswer
	s.cardTimer = s.cardTimerSeconds
	s.feedbackDelay = 0
	s.chosen = ""
	s.timedOut = false
	s.status = StatusInProgress
	if len(s.pool) == 0 {
		s.status = StatusComplete
	}
	s.touch()
	return nil
}

// Tick advances the per-card countdown by one second. On a card awaiting its
// answer, reaching zero behaves exactly like a wrong answer. On a correctly
// answered card it burns down the feedback delay and then auto-advances.
// Ticks on a complete session are no-ops.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusComplete {
		return
	}

	switch s.phase {
	case PhaseAwaitingAnswer:
		if s.cardTimer > 0 {
			s.cardTimer--
		}
		if s.cardTimer == 0 {
			s.phase = PhaseRevealed
			s.timedOut = true
		}
	case PhaseCorrectPending:
		if s.feedbackDelay > 0 {
			s.feedbackDelay--
		}
		if s.feedbackDelay == 0 {
			s.advance()
		}
	}
}

// advance must be called with the lock held.
func (s *Session) advance() {
	s.pool = append(s.pool[:s.current], s.pool[s.current+1:]...)
	if len(s.pool) == 0 {
		s.status = StatusComplete
		return
	}
	s.current = s.rng.Intn(len(s.pool))
	s.phase = PhaseAwaitingAnswer
	s.cardTimer = s.cardTimerSeconds
	s.feedbackDelay = 0
	s.chosen = ""
	s.timedOut = false
}

// Remaining returns the number of cards left in the working copy.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool)
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

// View is the client-facing snapshot. The current card is redacted until it
// is resolved (answered or timed out).
type View struct {
	ID               string           `json:"id"`
	Status           Status           `json:"status"`
	StateCode        string           `json:"state_code"`
	Phase            Phase            `json:"phase,omitempty"`
	RemainingCards   int              `json:"remaining_cards"`
	TotalCards       int              `json:"total_cards"`
	CardTimerSeconds int              `json:"card_timer_seconds"`
	CurrentCard      *models.Question `json:"current_card,omitempty"`
	ChosenOptionID   models.OptionID  `json:"chosen_option_id,omitempty"`
	TimedOut         bool             `json:"timed_out,omitempty"`
}

// Snapshot renders the session for a client, localized to lang.
func (s *Session) Snapshot(lang string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		ID:               s.id,
		Status:           s.status,
		StateCode:        s.stateCode,
		RemainingCards:   len(s.pool),
		TotalCards:       len(s.original),
		CardTimerSeconds: s.cardTimer,
	}
	if s.status == StatusComplete {
		return view
	}

	card := s.pool[s.current].Localized(lang)
	if s.phase == PhaseAwaitingAnswer {
		card = card.Redacted()
	}
	view.Phase = s.phase
	view.CurrentCard = &card
	view.ChosenOptionID = s.chosen
	view.TimedOut = s.timedOut
	return view
}
