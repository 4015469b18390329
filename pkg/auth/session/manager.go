package session

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/omega-store/omega-backend/pkg/config"
)

// store is the subset of the redis client the manager needs.
type store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// Manager tracks server-side sessions keyed by the access token's jti.
// A token whose jti is absent from the store is treated as revoked even
// when its signature and expiry are still valid.
type Manager struct {
	store store
	ttl   time.Duration
}

// New builds a Manager with the refresh TTL from config.
func New(s store, cfg config.JWTConfig) *Manager {
	return &Manager{store: s, ttl: cfg.RefreshTokenTTL()}
}

// Start records a session for the given jti and owning user.
func (m *Manager) Start(ctx context.Context, jti, userID string) error {
	if jti == "" {
		return errors.New("session jti is required")
	}
	return m.store.Set(ctx, m.store.AccessSessionKey(jti), userID, m.ttl)
}

// AccessSessionChecker is the narrow surface auth middleware needs.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, jti string) (bool, error)
}

// HasSession reports whether a live session exists for the jti.
func (m *Manager) HasSession(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, m.store.AccessSessionKey(jti))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Owner returns the user id the jti was issued to.
func (m *Manager) Owner(ctx context.Context, jti string) (string, error) {
	val, err := m.store.Get(ctx, m.store.AccessSessionKey(jti))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

// Rotate ends the old session and starts a new one atomically enough for
// single-client use: the old jti is deleted before the new one is written.
func (m *Manager) Rotate(ctx context.Context, oldJTI, newJTI, userID string) error {
	if oldJTI != "" {
		if err := m.store.Del(ctx, m.store.AccessSessionKey(oldJTI)); err != nil {
			return err
		}
	}
	return m.Start(ctx, newJTI, userID)
}

// End revokes the session for the jti.
func (m *Manager) End(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	return m.store.Del(ctx, m.store.AccessSessionKey(jti))
}
