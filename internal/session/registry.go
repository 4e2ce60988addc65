// Package session owns the live sessions of the process. The registry maps
// ids to session objects, drives the shared one-second clock, and evicts
// sessions nobody has touched for a while. State machines never start timers
// themselves; the registry is the single hosting environment that calls Tick
// and stops calling it on teardown.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/mbratke/buergertest/internal/exam"
	"github.com/mbratke/buergertest/internal/flashcards"
	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/practice"
)

// Registry holds every live session, at most one owner per id. All methods
// are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	exams      map[string]*exam.Session
	practices  map[string]*practice.Session
	flashcards map[string]*flashcards.Session
	ttl        time.Duration
	log        *logger.Logger
}

// NewRegistry creates a registry evicting sessions idle for longer than ttl.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 4 * time.Hour
	}
	return &Registry{
		exams:      map[string]*exam.Session{},
		practices:  map[string]*practice.Session{},
		flashcards: map[string]*flashcards.Session{},
		ttl:        ttl,
		log:        logger.Default().WithPrefix("registry"),
	}
}

// PutExam registers an exam session.
func (r *Registry) PutExam(s *exam.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exams[s.ID()] = s
}

// Exam looks up an exam session.
func (r *Registry) Exam(id string) (*exam.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.exams[id]
	return s, ok
}

// RemoveExam tears an exam session down. After removal the clock never ticks
// it again.
func (r *Registry) RemoveExam(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.exams[id]
	delete(r.exams, id)
	return ok
}

// PutPractice registers a practice session.
func (r *Registry) PutPractice(s *practice.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.practices[s.ID()] = s
}

// Practice looks up a practice session.
func (r *Registry) Practice(id string) (*practice.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.practices[id]
	return s, ok
}

// RemovePractice tears a practice session down.
func (r *Registry) RemovePractice(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.practices[id]
	delete(r.practices, id)
	return ok
}

// PutFlashcards registers a flashcard session.
func (r *Registry) PutFlashcards(s *flashcards.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flashcards[s.ID()] = s
}

// Flashcards looks up a flashcard session.
func (r *Registry) Flashcards(id string) (*flashcards.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.flashcards[id]
	return s, ok
}

// RemoveFlashcards tears a flashcard session down.
func (r *Registry) RemoveFlashcards(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.flashcards[id]
	delete(r.flashcards, id)
	return ok
}

// Counts returns the number of live sessions per kind.
func (r *Registry) Counts() (exams, practices, cards int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exams), len(r.practices), len(r.flashcards)
}

// TickAll advances every timed session by one second. Practice sessions are
// untimed and skipped. Submitted or complete sessions swallow the tick
// themselves.
func (r *Registry) TickAll() {
	r.mu.RLock()
	exams := make([]*exam.Session, 0, len(r.exams))
	for _, s := range r.exams {
		exams = append(exams, s)
	}
	cards := make([]*flashcards.Session, 0, len(r.flashcards))
	for _, s := range r.flashcards {
		cards = append(cards, s)
	}
	r.mu.RUnlock()

	for _, s := range exams {
		s.Tick()
	}
	for _, s := range cards {
		s.Tick()
	}
}

// EvictIdle drops every session whose last activity is older than the TTL and
// returns how many were removed. An evicted session is gone from the clock in
// the same step, so no stale timer outlives it.
func (r *Registry) EvictIdle() int {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.exams {
		if s.IdleSince().Before(cutoff) {
			delete(r.exams, id)
			evicted++
		}
	}
	for id, s := range r.practices {
		if s.IdleSince().Before(cutoff) {
			delete(r.practices, id)
			evicted++
		}
	}
	for id, s := range r.flashcards {
		if s.IdleSince().Before(cutoff) {
			delete(r.flashcards, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.log.Info("evicted %d idle sessions", evicted)
	}
	return evicted
}

// Run drives the clock and the eviction cycle until the context is cancelled.
func (r *Registry) Run(ctx context.Context, cleanupInterval time.Duration) {
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	r.log.Info("session clock started, cleanup every %v", cleanupInterval)

	clock := time.NewTicker(time.Second)
	defer clock.Stop()
	cleanup := time.NewTicker(cleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("session clock stopped")
			return
		case <-clock.C:
			r.TickAll()
		case <-cleanup.C:
			r.EvictIdle()
		}
	}
}
