package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cafe-site/models"
)

// NewMemoryStore returns a Store kept in process memory.
func NewMemoryStore() *Store {
	return &Store{
		Content:  &MemoryContent{},
		Users:    &MemoryUsers{},
		Sessions: &MemorySessions{sessions: make(map[string]models.Session)},
	}
}

// MemoryContent keeps the document serialized, the same way it would sit
// in a JSONB column, so corrupt payloads can be simulated.
type MemoryContent struct {
	mu  sync.RWMutex
	raw []byte
}

func (m *MemoryContent) Get(ctx context.Context) (*models.CafeData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.raw == nil {
		return nil, ErrNotFound
	}
	var data models.CafeData
	if err := json.Unmarshal(m.raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", ContentKey, ErrCorrupt, err)
	}
	return &data, nil
}

func (m *MemoryContent) Replace(ctx context.Context, data *models.CafeData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ContentKey, err)
	}
	m.mu.Lock()
	m.raw = b
	m.mu.Unlock()
	return nil
}

func (m *MemoryContent) Delete(ctx context.Context) error {
	m.mu.Lock()
	m.raw = nil
	m.mu.Unlock()
	return nil
}

// SetRaw stores an arbitrary payload under the content key.
func (m *MemoryContent) SetRaw(b []byte) {
	m.mu.Lock()
	m.raw = append([]byte(nil), b...)
	m.mu.Unlock()
}

// MemoryUsers keeps registration order, like the original user array.
type MemoryUsers struct {
	mu    sync.RWMutex
	users []models.User
}

func (m *MemoryUsers) List(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, len(m.users))
	for i, u := range m.users {
		out[i] = copyUser(u)
	}
	return out, nil
}

func (m *MemoryUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			c := copyUser(u)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			c := copyUser(u)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUsers) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	m.users = append(m.users, copyUser(*u))
	return nil
}

func (m *MemoryUsers) Update(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.users {
		if existing.ID == u.ID {
			m.users[i] = copyUser(*u)
			return nil
		}
	}
	return ErrNotFound
}

func copyUser(u models.User) models.User {
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	return u
}

type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func (m *MemorySessions) Create(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	m.sessions[s.Handle] = *s
	m.mu.Unlock()
	return nil
}

func (m *MemorySessions) Get(ctx context.Context, handle string) (*models.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[handle]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemorySessions) Delete(ctx context.Context, handle string) error {
	m.mu.Lock()
	delete(m.sessions, handle)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for h, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, h)
			n++
		}
	}
	return n, nil
}
