// Package redisstore keeps sessions in redis so logins survive a process
// restart.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"society-ledger/internal/domain/session"
)

const keyPrefix = "session:"

type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps an existing client. A zero ttl keeps sessions until
// explicit logout.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, sess session.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+sess.Token, payload, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess session.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
