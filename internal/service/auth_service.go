package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
)

var (
	// ErrEmailExists maps to 409
	ErrEmailExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials maps to 401 with a deliberately generic message,
	// identical for unknown email and wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountDeactivated maps to 401
	ErrAccountDeactivated = errors.New("account is deactivated")
	// ErrWrongPassword maps to 401 on change-password
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrNoUpdates maps to 400 on profile update
	ErrNoUpdates = errors.New("no valid fields to update")
	// ErrUserNotFound maps to 404
	ErrUserNotFound = repository.ErrUserNotFound
)

// userStore is the slice of the user repository the service needs
type userStore interface {
	CreateUserWithSession(user *models.UserModel, makeSession func(userID uint) (*models.UserSessionModel, error)) error
	GetUserByEmail(email string) (*models.UserModel, error)
	GetUserByID(id uint) (*models.UserModel, error)
	EmailTaken(email string, excludeUserID uint) (bool, error)
	UpdateUser(id uint, updates map[string]interface{}) error
	TouchLastLogin(id uint, at time.Time) error
}

// sessionRegistry is the slice of the session service the auth service needs
type sessionRegistry interface {
	Create(userID uint, token string) error
	NewRow(userID uint, token string) *models.UserSessionModel
	CacheAdd(userID uint, token string)
	Invalidate(token string) error
	InvalidateAll(userID uint) error
	IsValid(token string) (bool, error)
}

// SignupInput is the accepted signup payload after handler validation
type SignupInput struct {
	Name     string
	Email    string
	Password string
	// AdminCode grants the admin flag when it matches the configured code.
	// An empty configured code disables the path entirely.
	AdminCode string
}

// AuthService composes the credential store, password hasher, token codec
// and session registry behind the auth endpoints
type AuthService struct {
	users     userStore
	sessions  sessionRegistry
	hasher    *PasswordHasher
	tokens    *TokenService
	adminCode string
}

// NewAuthService creates a new service for the auth endpoints
func NewAuthService(users *repository.UserRepository, sessions *SessionService, hasher *PasswordHasher, tokens *TokenService, adminCode string) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		tokens:    tokens,
		adminCode: adminCode,
	}
}

// Signup creates a user and an initial session. The user insert and the
// session insert run in one transaction so a failure never leaves a half
// created account.
func (s *AuthService) Signup(input SignupInput) (*models.UserModel, string, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.users.GetUserByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailExists
	}

	isAdmin := s.adminCode != "" && input.AdminCode == s.adminCode

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &models.UserModel{
		UID:          newUID(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		IsActive:     true,
		LastLogin:    &now,
	}

	var token string
	err = s.users.CreateUserWithSession(user, func(userID uint) (*models.UserSessionModel, error) {
		issued, err := s.tokens.Issue(userID, email, isAdmin)
		if err != nil {
			return nil, err
		}
		token = issued
		return s.sessions.NewRow(userID, issued), nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}
	s.sessions.CacheAdd(user.ID, token)

	zaplogger.Info("user registered", zaplogger.Fields{"email": email, "uid": user.UID})
	return user, token, nil
}

// Login verifies credentials and issues a token with a session row.
// Unknown email and wrong password yield the same error.
func (s *AuthService) Login(email, password string) (*models.UserModel, string, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			zaplogger.Info("failed login attempt", zaplogger.Fields{"email": email, "reason": "user not found"})
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsActive {
		zaplogger.Info("failed login attempt", zaplogger.Fields{"email": email, "reason": "account deactivated"})
		return nil, "", ErrAccountDeactivated
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		zaplogger.Info("failed login attempt", zaplogger.Fields{"email": email, "reason": "invalid password"})
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	if err := s.sessions.Create(user.ID, token); err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(user.ID, now); err != nil {
		zaplogger.Warn("failed to stamp last login", zaplogger.Fields{"user_id": user.ID, "error": err.Error()})
	}
	user.LastLogin = &now

	zaplogger.Info("user logged in", zaplogger.Fields{"email": email})
	return user, token, nil
}

// Logout deactivates the session of the presented token
func (s *AuthService) Logout(token string) error {
	return s.sessions.Invalidate(token)
}

// Authenticate resolves a bearer token to an active user. The token must
// pass codec verification AND have an active session row, so server side
// revocation takes precedence over pure token validity.
func (s *AuthService) Authenticate(token string) (*models.UserModel, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	valid, err := s.sessions.IsValid(token)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// UpdateProfile applies partial name/email updates and returns the fresh user
func (s *AuthService) UpdateProfile(userID uint, name, email *string) (*models.UserModel, error) {
	updates := map[string]interface{}{}

	if name != nil {
		updates["name"] = strings.TrimSpace(*name)
	}
	if email != nil {
		normalized := normalizeEmail(*email)
		taken, err := s.users.EmailTaken(normalized, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailExists
		}
		updates["email"] = normalized
	}

	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}

	if err := s.users.UpdateUser(userID, updates); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return s.users.GetUserByID(userID)
}

// ChangePassword verifies the current password, stores the new hash and
// invalidates every session of the user
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdateUser(userID, map[string]interface{}{"password_hash": newHash}); err != nil {
		return err
	}

	if err := s.sessions.InvalidateAll(userID); err != nil {
		return err
	}

	zaplogger.Info("password changed", zaplogger.Fields{"user_id": userID})
	return nil
}

// SetAdmin grants or revokes the admin flag, used by the role assignment
// endpoint gated on an existing admin
func (s *AuthService) SetAdmin(userID uint, isAdmin bool) error {
	if _, err := s.users.GetUserByID(userID); err != nil {
		return err
	}
	return s.users.UpdateUser(userID, map[string]interface{}{"is_admin": isAdmin})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newUID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("user_%d_%s", time.Now().Unix(), suffix)
}
