package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"shopcart-api/internal/cache"
	"shopcart-api/internal/model"
)

const (
	// TokenPrefix is the prefix for all bearer session tokens.
	TokenPrefix = "sct_"

	// sessionKeyPrefix namespaces session keys in the cache.
	sessionKeyPrefix = "shopcart:session:"
)

// SessionService mints and validates opaque bearer tokens. Tokens live
// in the injected cache (memory by default, Redis when configured) so
// login is not required to carry Basic credentials on every request.
type SessionService struct {
	store cache.Cache
	ttl   time.Duration
}

// NewSessionService creates a new session service.
func NewSessionService(store cache.Cache, ttl time.Duration) *SessionService {
	return &SessionService{store: store, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create mints a new session token for the user.
func (s *SessionService) Create(ctx context.Context, user *model.User) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := TokenPrefix + hex.EncodeToString(tokenBytes)

	now := time.Now()
	session := model.Session{
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.store.Set(ctx, sessionKeyPrefix+token, data, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	log.Printf("[SessionService] session created for %q, expires %v", user.Username, session.ExpiresAt)
	return token, nil
}

// Validate checks a token and returns its session data.
func (s *SessionService) Validate(ctx context.Context, token string) (*model.Session, error) {
	if len(token) < len(TokenPrefix) || token[:len(TokenPrefix)] != TokenPrefix {
		return nil, fmt.Errorf("invalid token format")
	}

	data, err := s.store.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, fmt.Errorf("session not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.store.Delete(ctx, sessionKeyPrefix+token)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// Revoke deletes a session token.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	return s.store.Delete(ctx, sessionKeyPrefix+token)
}
