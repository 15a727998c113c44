package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/skirmish/internal/game"
)

// Registry tracks live sessions by ID.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	diag     *logrus.Logger
}

func NewRegistry(diag *logrus.Logger) *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session), diag: diag}
}

// Create starts a session and registers it.
func (r *Registry) Create(cfg game.MatchConfig) (*Session, error) {
	s, err := New(cfg, r.diag)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove closes and forgets a session. Unknown IDs are ignored.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll closes every registered session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*Session)
	r.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
