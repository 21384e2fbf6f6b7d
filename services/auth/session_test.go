package auth

import (
	"testing"
	"time"

	"equiptrack/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache spins up an in-process redis and a client pointed at it.
func newTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// -------- test fakes --------

type fakeSessionRepo struct {
	sessions map[string]*models.Session
	err      error

	getCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionRepo) GetByToken(token string) (*models.Session, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Create(s *models.Session) error {
	if f.err != nil {
		return f.err
	}
	s.CreatedAt = time.Now()
	cp := *s
	f.sessions[s.Token] = &cp
	return nil
}

func (f *fakeSessionRepo) DeleteByToken(token string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.sessions, token)
	return nil
}

// -------- tests --------

func TestIssueAndValidate(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo, Now: func() time.Time { return now }}

	session, err := mgr.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, now.Add(SessionTTL), session.ExpiresAt)

	userID, err := mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateUnknownOrMissingToken(t *testing.T) {
	mgr := &SessionManager{Repo: newFakeSessionRepo()}

	userID, err := mgr.Validate("")
	require.NoError(t, err)
	assert.Empty(t, userID)

	userID, err = mgr.Validate("no-such-token")
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestValidateExpiredSessionIsLazilyDeleted(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo, Now: func() time.Time { return now }}

	session, err := mgr.Issue("user-1")
	require.NoError(t, err)

	// Force the stored record past its expiry.
	repo.sessions[session.Token].ExpiresAt = now.Add(-time.Minute)

	userID, err := mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Empty(t, userID)

	// The expired record is gone from the store.
	_, exists := repo.sessions[session.Token]
	assert.False(t, exists)
}

func TestRevokeIsIdempotent(t *testing.T) {
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo}

	session, err := mgr.Issue("user-1")
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(session.Token))
	userID, err := mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Empty(t, userID)

	// Revoking again, or revoking a token that never existed, is not an error.
	require.NoError(t, mgr.Revoke(session.Token))
	require.NoError(t, mgr.Revoke("never-issued"))
	require.NoError(t, mgr.Revoke(""))
}

func TestConcurrentSessionsPerUserAreAllowed(t *testing.T) {
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo}

	first, err := mgr.Issue("user-1")
	require.NoError(t, err)
	second, err := mgr.Issue("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// Issuing a second session does not invalidate the first.
	userID, err := mgr.Validate(first.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateCacheHitSkipsStore(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	_, cache := newTestCache(t)
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo, Cache: cache, Now: func() time.Time { return now }}

	session, err := mgr.Issue("user-1")
	require.NoError(t, err)

	// First validation misses the cache and primes it from the store.
	userID, err := mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	storeReads := repo.getCalls

	// Second validation is served from cache without touching the store.
	userID, err = mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, storeReads, repo.getCalls)
}

func TestValidatePrimesCacheWithCappedTTL(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	mr, cache := newTestCache(t)
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo, Cache: cache, Now: func() time.Time { return now }}

	// Plenty of lifetime left: the cache TTL is the one-hour ceiling.
	fresh, err := mgr.Issue("user-1")
	require.NoError(t, err)
	_, err = mgr.Validate(fresh.Token)
	require.NoError(t, err)
	assert.Equal(t, sessionCacheTTL, mr.TTL(sessionCachePrefix+fresh.Token))

	// Less than an hour left: the TTL shrinks to the remaining lifetime, so
	// the cache entry cannot outlive its session.
	ending, err := mgr.Issue("user-2")
	require.NoError(t, err)
	repo.sessions[ending.Token].ExpiresAt = now.Add(10 * time.Minute)
	_, err = mgr.Validate(ending.Token)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, mr.TTL(sessionCachePrefix+ending.Token))
}

func TestValidateDoesNotPrimeAtZeroRemaining(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	mr, cache := newTestCache(t)
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo, Cache: cache, Now: func() time.Time { return now }}

	// A session on the exact expiry instant still validates, but priming it
	// would mean a zero TTL, which redis treats as no expiration at all.
	session, err := mgr.Issue("user-1")
	require.NoError(t, err)
	repo.sessions[session.Token].ExpiresAt = now

	userID, err := mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.False(t, mr.Exists(sessionCachePrefix+session.Token))
}

func TestValidateFallsBackToStoreOnCacheFailure(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	mr, cache := newTestCache(t)
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo, Cache: cache, Now: func() time.Time { return now }}

	session, err := mgr.Issue("user-1")
	require.NoError(t, err)

	mr.SetError("redis is down")
	userID, err := mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestRevokeDropsCacheEntry(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	mr, cache := newTestCache(t)
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo, Cache: cache, Now: func() time.Time { return now }}

	session, err := mgr.Issue("user-1")
	require.NoError(t, err)
	_, err = mgr.Validate(session.Token)
	require.NoError(t, err)
	require.True(t, mr.Exists(sessionCachePrefix+session.Token))

	require.NoError(t, mgr.Revoke(session.Token))

	// Neither the cache entry nor the record survives; a revoked token can
	// never validate from cache.
	assert.False(t, mr.Exists(sessionCachePrefix+session.Token))
	userID, err := mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestLazyCleanupDropsCacheEntry(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	mr, cache := newTestCache(t)
	repo := newFakeSessionRepo()
	mgr := &SessionManager{Repo: repo, Cache: cache, Now: func() time.Time { return now }}

	session, err := mgr.Issue("user-1")
	require.NoError(t, err)
	repo.sessions[session.Token].ExpiresAt = now.Add(-time.Minute)

	userID, err := mgr.Validate(session.Token)
	require.NoError(t, err)
	assert.Empty(t, userID)
	assert.False(t, mr.Exists(sessionCachePrefix+session.Token))
	_, exists := repo.sessions[session.Token]
	assert.False(t, exists)
}
