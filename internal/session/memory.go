package session

import (
	"context"
	"sync"

	"github.com/desertthunder/sportshub/internal/models"
)

// MemoryPersistence keeps the session in process memory.
//
// The error fields, when set, are returned by the matching method without touching state.
type MemoryPersistence struct {
	mu     sync.Mutex
	stored *models.Session

	LoadErr  error
	SaveErr  error
	ClearErr error
}

// NewMemoryPersistence returns an empty [MemoryPersistence].
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (m *MemoryPersistence) Load(ctx context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.stored == nil {
		return nil, nil
	}
	s := m.stored.Clone()
	return &s, nil
}

func (m *MemoryPersistence) Save(ctx context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	c := s.Clone()
	m.stored = &c
	return nil
}

func (m *MemoryPersistence) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.stored = nil
	return nil
}
