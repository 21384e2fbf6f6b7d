package auth

import (
	"context"
	"time"

	sessionRepo "equiptrack/database/repository/session"
	"equiptrack/models"
	"equiptrack/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionTTL is the fixed lifetime of a session, set at issuance. There is no
// renewal or sliding expiry.
const SessionTTL = 7 * 24 * time.Hour

// SessionCookieName is the HTTP-only cookie carrying the session token. Its
// max-age matches SessionTTL.
const SessionCookieName = "sessionToken"

const (
	sessionCachePrefix = "session:"
	sessionCacheTTL    = time.Hour
)

// SessionManager issues, validates, and revokes opaque session tokens backed
// by persisted session records. Validation goes through a Redis read-through
// cache when one is configured; Mongo stays authoritative and a cache entry
// never outlives its session.
type SessionManager struct {
	Repo  sessionRepo.SessionRepository
	Cache *redis.Client
	// Now overrides the clock used for expiry checks; nil means time.Now.
	Now func() time.Time
}

func (m *SessionManager) clock() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Issue generates an unguessable opaque token and persists a session record
// expiring SessionTTL from now. Every call creates a new record; concurrent
// sessions per user are permitted.
func (m *SessionManager) Issue(userID string) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: m.clock().Add(SessionTTL),
	}
	if err := m.Repo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Validate resolves a token to its user ID. It fails closed: a missing token,
// an unknown token, or a past-expiry record all yield ("", nil). An expired
// record is deleted on sight; that cleanup is not surfaced to the caller.
func (m *SessionManager) Validate(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	ctx := context.Background()

	if m.Cache != nil {
		userID, err := m.Cache.Get(ctx, sessionCachePrefix+token).Result()
		if err == nil {
			return userID, nil
		}
		if err != redis.Nil {
			utils.GetLogger().Warn("session cache read failed, falling back to store", zap.Error(err))
		}
	}

	session, err := m.Repo.GetByToken(token)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", nil
	}

	if session.Expired(m.clock()) {
		m.dropCached(ctx, token)
		if err := m.Repo.DeleteByToken(token); err != nil {
			utils.GetLogger().Warn("failed to delete expired session", zap.Error(err))
		}
		return "", nil
	}

	if m.Cache != nil {
		ttl := sessionCacheTTL
		if remaining := session.ExpiresAt.Sub(m.clock()); remaining < ttl {
			ttl = remaining
		}
		// The second clock read can land exactly on expiry; a zero TTL would
		// store the key without expiration, so prime only while time remains.
		if ttl > 0 {
			if err := m.Cache.Set(ctx, sessionCachePrefix+token, session.UserID, ttl).Err(); err != nil {
				utils.GetLogger().Warn("failed to prime session cache", zap.Error(err))
			}
		}
	}
	return session.UserID, nil
}

// Revoke deletes the session record for the token. Revoking an absent or
// already-revoked token is not an error.
func (m *SessionManager) Revoke(token string) error {
	if token == "" {
		return nil
	}
	// Cache entry goes first so a crash between the two deletes cannot leave
	// a revoked token still validating from cache.
	m.dropCached(context.Background(), token)
	return m.Repo.DeleteByToken(token)
}

func (m *SessionManager) dropCached(ctx context.Context, token string) {
	if m.Cache == nil {
		return
	}
	if err := m.Cache.Del(ctx, sessionCachePrefix+token).Err(); err != nil {
		utils.GetLogger().Warn("failed to drop cached session", zap.Error(err))
	}
}
