package repository

import (
	"errors"
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"gorm.io/gorm"
)

// ErrSessionNotFound is returned when no session row matches the token hash
var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	DB *gorm.DB
}

// NewSessionRepository creates a new repository for the user_sessions table
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// CreateSession inserts a session row
func (r *SessionRepository) CreateSession(session *models.UserSessionModel) error {
	return r.DB.Create(session).Error
}

// GetActiveSession gets the session for a token hash, valid means
// is_active and unexpired
func (r *SessionRepository) GetActiveSession(tokenHash string, now time.Time) (*models.UserSessionModel, error) {
	var session models.UserSessionModel
	err := r.DB.Where("token_hash = ? AND is_active = ? AND expires_at > ?", tokenHash, true, now).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// DeactivateByTokenHash sets is_active=false on the row matching the hash.
// Rows are kept for the audit trail, never deleted.
func (r *SessionRepository) DeactivateByTokenHash(tokenHash string) error {
	return r.DB.Model(&models.UserSessionModel{}).
		Where("token_hash = ?", tokenHash).
		Update("is_active", false).Error
}

// DeactivateAllForUser sets is_active=false on every session row of the user
func (r *SessionRepository) DeactivateAllForUser(userID uint) error {
	return r.DB.Model(&models.UserSessionModel{}).
		Where("user_id = ?", userID).
		Update("is_active", false).Error
}

// DeleteExpiredBefore removes session rows that expired before the cutoff
func (r *SessionRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	result := r.DB.Where("expires_at < ?", cutoff).Delete(&models.UserSessionModel{})
	return result.RowsAffected, result.Error
}
