// Package storage keeps the in-memory, per-chat client state. Nothing here
// survives a restart: sessions are re-probed against the backend and
// in-progress quiz attempts are simply gone, matching the stateless-client
// contract.
package storage

import (
	"sync"

	"github.com/belajarku/belajarku-bot/internal/quiz"
	"github.com/belajarku/belajarku-bot/internal/service"
	"github.com/belajarku/belajarku-bot/internal/session"
)

// UserSession bundles everything one Telegram chat owns: its own gateway
// client (and thus its own cookie jar), session store, services and the
// active quiz attempt, if any.
type UserSession struct {
	Auth  *session.Store
	Guru  *service.GuruService
	Murid *service.MuridService

	// ActiveQuiz is the quiz attempt currently on screen. Replaced on every
	// new activation; a Closed or Failed attempt stays terminal.
	ActiveQuiz *quiz.Session
}

// Factory builds a fresh UserSession, typically wiring a new API client
// against the configured backend.
type Factory func() (*UserSession, error)

// SessionRegistry maps chat ids to their client bundles.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[int64]*UserSession
	factory  Factory
}

func NewSessionRegistry(factory Factory) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[int64]*UserSession),
		factory:  factory,
	}
}

// GetOrCreate returns the bundle for a chat, building it on first contact.
func (r *SessionRegistry) GetOrCreate(chatID int64) (*UserSession, error) {
	r.mu.RLock()
	us, ok := r.sessions[chatID]
	r.mu.RUnlock()
	if ok {
		return us, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if us, ok := r.sessions[chatID]; ok {
		return us, nil
	}

	us, err := r.factory()
	if err != nil {
		return nil, err
	}
	r.sessions[chatID] = us
	return us, nil
}

// Get returns the bundle for a chat without creating one.
func (r *SessionRegistry) Get(chatID int64) (*UserSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	us, ok := r.sessions[chatID]
	return us, ok
}

// Delete drops a chat's bundle, e.g. after logout, so the next contact
// starts from a clean client.
func (r *SessionRegistry) Delete(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
}
