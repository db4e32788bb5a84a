package repository

import (
	"errors"
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"gorm.io/gorm"
)

// ErrGemNotFound is returned when no hidden gem row matches the id
var ErrGemNotFound = errors.New("hidden gem not found")

// GemRow is a hidden gem joined with the submitter name
type GemRow struct {
	models.HiddenGemModel
	SubmittedByName string `json:"submittedByName"`
}

type GemRepository struct {
	DB *gorm.DB
}

// NewGemRepository creates a new repository for the hidden_gems table
func NewGemRepository(db *gorm.DB) *GemRepository {
	return &GemRepository{DB: db}
}

// CreateGem inserts a gem row, unapproved
func (r *GemRepository) CreateGem(gem *models.HiddenGemModel) error {
	return r.DB.Create(gem).Error
}

// GetApprovedGems gets approved gems with submitter names, latest approval first
func (r *GemRepository) GetApprovedGems() ([]GemRow, error) {
	var rows []GemRow
	err := r.DB.Model(&models.HiddenGemModel{}).
		Select("hidden_gems.*, users.name AS submitted_by_name").
		Joins("JOIN users ON users.id = hidden_gems.submitted_by").
		Where("hidden_gems.approved = ?", true).
		Order("hidden_gems.approved_at DESC").
		Scan(&rows).Error
	return rows, err
}

// GetPendingGems gets unapproved gems with submitter names, newest first
func (r *GemRepository) GetPendingGems() ([]GemRow, error) {
	var rows []GemRow
	err := r.DB.Model(&models.HiddenGemModel{}).
		Select("hidden_gems.*, users.name AS submitted_by_name").
		Joins("JOIN users ON users.id = hidden_gems.submitted_by").
		Where("hidden_gems.approved = ?", false).
		Order("hidden_gems.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ApproveGem marks a pending gem approved and stamps the approval time
func (r *GemRepository) ApproveGem(id uint, at time.Time) error {
	result := r.DB.Model(&models.HiddenGemModel{}).
		Where("id = ? AND approved = ?", id, false).
		Updates(map[string]interface{}{"approved": true, "approved_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGemNotFound
	}
	return nil
}

// DeleteGem removes a gem row
func (r *GemRepository) DeleteGem(id uint) error {
	result := r.DB.Where("id = ?", id).Delete(&models.HiddenGemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGemNotFound
	}
	return nil
}
