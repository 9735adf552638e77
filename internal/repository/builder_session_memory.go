package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/relaydesk/relaydesk/internal/domain"
	"github.com/relaydesk/relaydesk/pkg/cache"
)

// MemoryBuilderSessionStore keeps sessions in process, encoded the same way
// as in Redis so callers never share a *signature.Session. Reads and writes
// both restart the expiry, so a session lives for ttl after its last use.
type MemoryBuilderSessionStore struct {
	cache cache.Cache[[]byte]
	ttl   time.Duration
}

func NewMemoryBuilderSessionStore(ttl time.Duration) *MemoryBuilderSessionStore {
	return NewMemoryBuilderSessionStoreWithCache(cache.NewInMemoryCache[[]byte](time.Minute), ttl)
}

func NewMemoryBuilderSessionStoreWithCache(c cache.Cache[[]byte], ttl time.Duration) *MemoryBuilderSessionStore {
	return &MemoryBuilderSessionStore{cache: c, ttl: ttl}
}

func (s *MemoryBuilderSessionStore) Get(_ context.Context, id string) (*domain.BuilderSession, error) {
	data, ok := s.cache.Get(id)
	if !ok {
		return nil, &domain.ErrSessionNotFound{SessionID: id}
	}
	s.cache.Touch(id, s.ttl)
	return decodeBuilderSession(id, data)
}

func (s *MemoryBuilderSessionStore) Put(_ context.Context, session *domain.BuilderSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal builder session: %w", err)
	}
	s.cache.Set(session.ID, data, s.ttl)
	return nil
}

func (s *MemoryBuilderSessionStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

// Close stops the expiry sweeper
func (s *MemoryBuilderSessionStore) Close() error {
	s.cache.Stop()
	return nil
}
