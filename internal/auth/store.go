package auth

import (
	"context"
	"errors"
	"sync"
)

var ErrNoToken = errors.New("no persisted session token")

// TokenStore is the durable home of the session token.
// Load returns ErrNoToken when nothing is stored. Remove of an absent token is a no-op.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

var _ TokenStore = (*MemoryStore)(nil)

// MemoryStore keeps the token in memory. Errors can be injected for tests.
type MemoryStore struct {
	mutex sync.Mutex
	token string

	LoadErr   error
	SaveErr   error
	RemoveErr error
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Load(_ context.Context) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.LoadErr != nil {
		return "", s.LoadErr
	}
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) Save(_ context.Context, token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.token = token
	return nil
}

func (s *MemoryStore) Remove(_ context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	s.token = ""
	return nil
}

// Token returns the stored token, empty if none.
func (s *MemoryStore) Token() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.token
}
