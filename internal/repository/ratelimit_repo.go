package repository

import (
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"gorm.io/gorm"
)

type RateLimitRepository struct {
	DB *gorm.DB
}

// NewRateLimitRepository creates a new repository for the rate_limits table
func NewRateLimitRepository(db *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{DB: db}
}

// CountSince counts attempts for an identifier created after the cutoff
func (r *RateLimitRepository) CountSince(identifier string, cutoff time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&models.RateLimitModel{}).
		Where("identifier = ? AND created_at > ?", identifier, cutoff).
		Count(&count).Error
	return count, err
}

// RecordAttempt inserts one attempt row for the identifier
func (r *RateLimitRepository) RecordAttempt(identifier string) error {
	return r.DB.Create(&models.RateLimitModel{Identifier: identifier}).Error
}

// PruneIdentifierBefore removes aged rows for one identifier
func (r *RateLimitRepository) PruneIdentifierBefore(identifier string, cutoff time.Time) error {
	return r.DB.Where("identifier = ? AND created_at < ?", identifier, cutoff).
		Delete(&models.RateLimitModel{}).Error
}

// PruneBefore removes all rows older than the cutoff
func (r *RateLimitRepository) PruneBefore(cutoff time.Time) (int64, error) {
	result := r.DB.Where("created_at < ?", cutoff).Delete(&models.RateLimitModel{})
	return result.RowsAffected, result.Error
}
