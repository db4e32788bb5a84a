package service

import (
	"testing"
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionStore keeps session rows in memory keyed by token hash
type fakeSessionStore struct {
	rows map[string]*models.UserSessionModel
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{rows: map[string]*models.UserSessionModel{}}
}

func (f *fakeSessionStore) CreateSession(session *models.UserSessionModel) error {
	copied := *session
	f.rows[session.TokenHash] = &copied
	return nil
}

func (f *fakeSessionStore) GetActiveSession(tokenHash string, now time.Time) (*models.UserSessionModel, error) {
	row, ok := f.rows[tokenHash]
	if !ok || !row.IsActive || !row.ExpiresAt.After(now) {
		return nil, repository.ErrSessionNotFound
	}
	return row, nil
}

func (f *fakeSessionStore) DeactivateByTokenHash(tokenHash string) error {
	if row, ok := f.rows[tokenHash]; ok {
		row.IsActive = false
	}
	return nil
}

func (f *fakeSessionStore) DeactivateAllForUser(userID uint) error {
	for _, row := range f.rows {
		if row.UserID == userID {
			row.IsActive = false
		}
	}
	return nil
}

func newTestSessionService(store sessionStore) *SessionService {
	return &SessionService{repo: store, ttl: time.Hour}
}

func TestTokenHashIsStableHex(t *testing.T) {
	t.Parallel()

	hash := TokenHash("some.bearer.token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, TokenHash("some.bearer.token"))
	assert.NotEqual(t, hash, TokenHash("other.bearer.token"))
	assert.NotContains(t, hash, "some")
}

func TestSessionCreateAndIsValid(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()
	svc := newTestSessionService(store)

	require.NoError(t, svc.Create(7, "token-a"))

	row, ok := store.rows[TokenHash("token-a")]
	require.True(t, ok)
	assert.Equal(t, uint(7), row.UserID)
	assert.True(t, row.IsActive)
	assert.True(t, row.ExpiresAt.After(time.Now().UTC()))

	valid, err := svc.IsValid("token-a")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.IsValid("never-issued")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSessionInvalidate(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()
	svc := newTestSessionService(store)

	require.NoError(t, svc.Create(7, "token-a"))
	require.NoError(t, svc.Invalidate("token-a"))

	valid, err := svc.IsValid("token-a")
	require.NoError(t, err)
	assert.False(t, valid)

	// row survives as an audit record
	row, ok := store.rows[TokenHash("token-a")]
	require.True(t, ok)
	assert.False(t, row.IsActive)
}

func TestSessionInvalidateAll(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()
	svc := newTestSessionService(store)

	require.NoError(t, svc.Create(7, "token-a"))
	require.NoError(t, svc.Create(7, "token-b"))
	require.NoError(t, svc.Create(8, "token-c"))

	require.NoError(t, svc.InvalidateAll(7))

	for token, want := range map[string]bool{"token-a": false, "token-b": false, "token-c": true} {
		valid, err := svc.IsValid(token)
		require.NoError(t, err)
		assert.Equal(t, want, valid, token)
	}
}

func TestSessionExpiredRowIsInvalid(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()
	svc := newTestSessionService(store)

	store.rows[TokenHash("stale")] = &models.UserSessionModel{
		UserID:    7,
		TokenHash: TokenHash("stale"),
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
		IsActive:  true,
	}

	valid, err := svc.IsValid("stale")
	require.NoError(t, err)
	assert.False(t, valid)
}
