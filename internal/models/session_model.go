package models

import (
	"time"
)

const UserSessionsTableName = "user_sessions"

// UserSessionModel is a server side record of an issued token.
// The raw token is never stored, only its SHA-256 hex.
type UserSessionModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	TokenHash string    `gorm:"index;size:64" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (UserSessionModel) TableName() string {
	return UserSessionsTableName
}
