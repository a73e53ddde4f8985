package session

import (
	"sync"

	"resume-builder/internal/model"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Manager owns the live editing sessions.
type Manager struct {
	fs  afero.Fs
	log zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager stores attachment blobs in fs, or in memory when fs is nil.
func NewManager(fs afero.Fs, log zerolog.Logger) *Manager {
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	return &Manager{fs: fs, log: log, sessions: map[string]*Session{}}
}

// Create opens a session with empty data and the default template.
func (m *Manager) Create() *Session {
	s := newSession(model.NewID(), m.fs)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.log.Debug().Str("session_id", s.ID).Msg("session opened")
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete closes the session and forgets it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	m.log.Debug().Str("session_id", id).Msg("session closed")
	return s.Close()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll releases every session. It is called on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = map[string]*Session{}
	m.mu.Unlock()
	for id, s := range all {
		if err := s.Close(); err != nil {
			m.log.Warn().Err(err).Str("session_id", id).Msg("release session blobs")
		}
	}
}
