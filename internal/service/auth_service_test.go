package service

import (
	"strings"
	"testing"
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore keeps user rows in memory
type fakeUserStore struct {
	nextID uint
	users  map[uint]*models.UserModel
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[uint]*models.UserModel{}}
}

func (f *fakeUserStore) CreateUserWithSession(user *models.UserModel, makeSession func(userID uint) (*models.UserSessionModel, error)) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = f.nextID
	f.nextID++
	if _, err := makeSession(user.ID); err != nil {
		return err
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetUserByEmail(email string) (*models.UserModel, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(id uint) (*models.UserModel, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) EmailTaken(email string, excludeUserID uint) (bool, error) {
	for _, user := range f.users {
		if user.Email == email && user.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdateUser(id uint, updates map[string]interface{}) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			user.Name = value.(string)
		case "email":
			user.Email = value.(string)
		case "password_hash":
			user.PasswordHash = value.(string)
		case "is_admin":
			user.IsAdmin = value.(bool)
		}
	}
	return nil
}

func (f *fakeUserStore) TouchLastLogin(id uint, at time.Time) error {
	if user, ok := f.users[id]; ok {
		user.LastLogin = &at
	}
	return nil
}

// fakeRegistry implements sessionRegistry over a hash->row map
type fakeRegistry struct {
	rows map[string]*models.UserSessionModel
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{rows: map[string]*models.UserSessionModel{}}
}

func (f *fakeRegistry) NewRow(userID uint, token string) *models.UserSessionModel {
	row := &models.UserSessionModel{
		UserID:    userID,
		TokenHash: TokenHash(token),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		IsActive:  true,
	}
	f.rows[row.TokenHash] = row
	return row
}

func (f *fakeRegistry) Create(userID uint, token string) error {
	f.NewRow(userID, token)
	return nil
}

func (f *fakeRegistry) CacheAdd(userID uint, token string) {}

func (f *fakeRegistry) Invalidate(token string) error {
	if row, ok := f.rows[TokenHash(token)]; ok {
		row.IsActive = false
	}
	return nil
}

func (f *fakeRegistry) InvalidateAll(userID uint) error {
	for _, row := range f.rows {
		if row.UserID == userID {
			row.IsActive = false
		}
	}
	return nil
}

func (f *fakeRegistry) IsValid(token string) (bool, error) {
	row, ok := f.rows[TokenHash(token)]
	return ok && row.IsActive && row.ExpiresAt.After(time.Now().UTC()), nil
}

func newTestAuthService(adminCode string) (*AuthService, *fakeUserStore, *fakeRegistry) {
	users := newFakeUserStore()
	sessions := newFakeRegistry()
	svc := &AuthService{
		users:     users,
		sessions:  sessions,
		hasher:    NewPasswordHasher(bcrypt.MinCost),
		tokens:    NewTokenService("test-secret", time.Hour),
		adminCode: adminCode,
	}
	return svc, users, sessions
}

func TestSignupCreatesUserWithSession(t *testing.T) {
	t.Parallel()

	svc, users, sessions := newTestAuthService("")

	user, token, err := svc.Signup(SignupInput{
		Name:     "Asha Traveler",
		Email:    "  Asha@Example.COM ",
		Password: "travel123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "Asha Traveler", user.Name)
	assert.False(t, user.IsAdmin)
	assert.True(t, user.IsActive)
	assert.NotNil(t, user.LastLogin)
	assert.True(t, strings.HasPrefix(user.UID, "user_"))
	assert.NotEqual(t, "travel123", user.PasswordHash)

	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)

	valid, err := sessions.IsValid(token)
	require.NoError(t, err)
	assert.True(t, valid)

	stored, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, svc.hasher.Verify("travel123", stored.PasswordHash))
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("")

	_, _, err := svc.Signup(SignupInput{Name: "First", Email: "dup@example.com", Password: "travel123"})
	require.NoError(t, err)

	_, _, err = svc.Signup(SignupInput{Name: "Second", Email: "DUP@example.com", Password: "travel456"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestSignupAdminCode(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("let-me-in")

	admin, _, err := svc.Signup(SignupInput{Name: "Admin", Email: "admin@example.com", Password: "travel123", AdminCode: "let-me-in"})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	regular, _, err := svc.Signup(SignupInput{Name: "Regular", Email: "user@example.com", Password: "travel123", AdminCode: "wrong"})
	require.NoError(t, err)
	assert.False(t, regular.IsAdmin)
}

func TestSignupAdminCodeDisabledWhenUnconfigured(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("")

	user, _, err := svc.Signup(SignupInput{Name: "Sneaky", Email: "sneaky@example.com", Password: "travel123", AdminCode: ""})
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}

func TestLoginRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, sessions := newTestAuthService("")

	created, _, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)

	user, token, err := svc.Login("ASHA@example.com", "travel123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotNil(t, user.LastLogin)

	valid, err := sessions.IsValid(token)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("")

	_, _, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)

	_, _, unknownErr := svc.Login("nobody@example.com", "travel123")
	_, _, wrongPwErr := svc.Login("asha@example.com", "not-the-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestAuthService("")

	user, _, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)
	users.users[user.ID].IsActive = false

	_, _, err = svc.Login("asha@example.com", "travel123")
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("")

	created, token, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)

	user, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("")

	_, token, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))

	// the token still verifies cryptographically but the session is gone
	_, err = svc.tokens.Verify(token)
	require.NoError(t, err)
	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePasswordInvalidatesAllSessions(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("")

	user, firstToken, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)
	_, secondToken, err := svc.Login("asha@example.com", "travel123")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(user.ID, "travel123", "newpass456"))

	for _, token := range []string{firstToken, secondToken} {
		_, err := svc.Authenticate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}

	_, _, err = svc.Login("asha@example.com", "travel123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("asha@example.com", "newpass456")
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("")

	user, token, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)

	err = svc.ChangePassword(user.ID, "not-the-password", "newpass456")
	assert.ErrorIs(t, err, ErrWrongPassword)

	// existing sessions stay valid after a rejected change
	_, err = svc.Authenticate(token)
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService("")

	user, _, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)
	_, _, err = svc.Signup(SignupInput{Name: "Taken", Email: "taken@example.com", Password: "travel123"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(user.ID, nil, nil)
	assert.ErrorIs(t, err, ErrNoUpdates)

	taken := "taken@example.com"
	_, err = svc.UpdateProfile(user.ID, nil, &taken)
	assert.ErrorIs(t, err, ErrEmailExists)

	newName := "  Asha Renamed  "
	newEmail := "Asha.New@Example.com"
	updated, err := svc.UpdateProfile(user.ID, &newName, &newEmail)
	require.NoError(t, err)
	assert.Equal(t, "Asha Renamed", updated.Name)
	assert.Equal(t, "asha.new@example.com", updated.Email)

	// re-submitting the own address is not a conflict
	own := "asha.new@example.com"
	_, err = svc.UpdateProfile(user.ID, nil, &own)
	assert.NoError(t, err)
}

func TestSetAdmin(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestAuthService("")

	user, _, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@example.com", Password: "travel123"})
	require.NoError(t, err)

	require.NoError(t, svc.SetAdmin(user.ID, true))
	stored, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	err = svc.SetAdmin(9999, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
