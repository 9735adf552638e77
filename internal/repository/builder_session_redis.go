package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/relaydesk/relaydesk/internal/domain"
)

const builderSessionPrefix = "builder:session:"

// RedisBuilderSessionStore keeps builder sessions in Redis. Get and Put both
// reset the expiration, so a session lives for ttl after its last use.
type RedisBuilderSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisBuilderSessionStore connects to redisURL and checks the connection
func NewRedisBuilderSessionStore(redisURL string, ttl time.Duration) (*RedisBuilderSessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisBuilderSessionStoreWithClient(client, ttl), nil
}

// NewRedisBuilderSessionStoreWithClient creates a store from an existing Redis client
func NewRedisBuilderSessionStoreWithClient(client *redis.Client, ttl time.Duration) *RedisBuilderSessionStore {
	return &RedisBuilderSessionStore{
		client: client,
		prefix: builderSessionPrefix,
		ttl:    ttl,
	}
}

func (s *RedisBuilderSessionStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisBuilderSessionStore) Get(ctx context.Context, id string) (*domain.BuilderSession, error) {
	data, err := s.client.GetEx(ctx, s.key(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &domain.ErrSessionNotFound{SessionID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get builder session: %w", err)
	}
	return decodeBuilderSession(id, data)
}

func (s *RedisBuilderSessionStore) Put(ctx context.Context, session *domain.BuilderSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal builder session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save builder session: %w", err)
	}
	return nil
}

func (s *RedisBuilderSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete builder session: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisBuilderSessionStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *RedisBuilderSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decodeBuilderSession(id string, data []byte) (*domain.BuilderSession, error) {
	var session domain.BuilderSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal builder session %s: %w", id, err)
	}
	if session.Session == nil {
		return nil, fmt.Errorf("unmarshal builder session %s: missing editor state", id)
	}
	return &session, nil
}
