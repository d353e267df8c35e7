package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound covers unknown, destroyed, and expired tokens alike.
var ErrSessionNotFound = errors.New("session not found")

// Identity is the minimal projection stored in a session. Provider
// profiles and access tokens are never persisted here.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionStore resolves opaque client-held tokens to identities. The same
// token resolves to the same identity until the session is destroyed or
// its TTL lapses.
type SessionStore interface {
	Create(ctx context.Context, id Identity) (string, error)
	Get(ctx context.Context, token string) (*Identity, error)
	Destroy(ctx context.Context, token string) error
}

func sessionKey(token string) string {
	return "session:token:" + token
}

// RedisSessionStore keeps one redis hash per session token with the
// configured TTL.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *RedisSessionStore) Create(ctx context.Context, id Identity) (string, error) {
	token := uuid.NewString()
	key := sessionKey(token)
	fields := map[string]any{
		"user_id":    id.ID,
		"name":       id.Name,
		"email":      id.Email,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	data, err := s.rdb.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrSessionNotFound
	}
	return &Identity{ID: data["user_id"], Name: data["name"], Email: data["email"]}, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

var _ SessionStore = (*RedisSessionStore)(nil)
