package sessions

import (
	"context"
	"sync"
	"time"

	"blog-app/models"
)

// MemoryStore keeps sessions in process memory. They are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]models.Session{}, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	if s.Expired(m.now()) {
		delete(m.sessions, id)
		return nil, ErrNoSession
	}
	s.Flashes = copyFlashes(s.Flashes)
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *session
	s.Flashes = copyFlashes(session.Flashes)
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func copyFlashes(f models.Flashes) models.Flashes {
	out := make(models.Flashes, len(f))
	for k, v := range f {
		out[k] = append([]string(nil), v...)
	}
	return out
}
