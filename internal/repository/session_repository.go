package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a refresh token is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository holds refresh tokens in Redis. Keys expire with the
// refresh TTL, so stale sessions vanish without a sweep.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Store associates a refresh token with a teacher ID for the given TTL.
func (r *SessionRepository) Store(ctx context.Context, token, teacherID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(token), teacherID, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Lookup resolves a refresh token to its teacher ID.
func (r *SessionRepository) Lookup(ctx context.Context, token string) (string, error) {
	teacherID, err := r.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return teacherID, nil
}

// Revoke removes a refresh token. Revoking an unknown token is a no-op.
func (r *SessionRepository) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
