package models

import (
	"time"
)

const RateLimitsTableName = "rate_limits"

// RateLimitModel is one row per recorded attempt for an identifier
type RateLimitModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Identifier string    `gorm:"index:idx_identifier_time,priority:1;size:255" json:"identifier"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_identifier_time,priority:2" json:"created_at"`
}

func (RateLimitModel) TableName() string {
	return RateLimitsTableName
}
