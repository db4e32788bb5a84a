package service

import (
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
	"gorm.io/gorm"
)

// ErrGemNotFound maps to 404 on the admin gem endpoints
var ErrGemNotFound = repository.ErrGemNotFound

// gemStore is the slice of the gem repository the service needs
type gemStore interface {
	CreateGem(gem *models.HiddenGemModel) error
	GetApprovedGems() ([]repository.GemRow, error)
	GetPendingGems() ([]repository.GemRow, error)
	ApproveGem(id uint, at time.Time) error
	DeleteGem(id uint) error
}

// GemSubmission is an accepted hidden gem payload after handler validation
type GemSubmission struct {
	Name        string
	Location    string
	Description string
	Category    string
}

// GemService handles hidden gem submissions and the admin approval flow
type GemService struct {
	repo gemStore
}

// NewGemService creates a new service for the hidden gems API
func NewGemService(db *gorm.DB) *GemService {
	return &GemService{repo: repository.NewGemRepository(db)}
}

// ApprovedGems returns approved gems, latest approval first
func (s *GemService) ApprovedGems() ([]repository.GemRow, error) {
	return s.repo.GetApprovedGems()
}

// PendingGems returns gems awaiting approval, newest first
func (s *GemService) PendingGems() ([]repository.GemRow, error) {
	return s.repo.GetPendingGems()
}

// Submit stores a gem as pending approval and returns the created record
func (s *GemService) Submit(userID uint, input GemSubmission) (*models.HiddenGemModel, error) {
	gem := &models.HiddenGemModel{
		Name:        input.Name,
		Location:    input.Location,
		Description: input.Description,
		Category:    input.Category,
		SubmittedBy: userID,
		Approved:    false,
	}
	if err := s.repo.CreateGem(gem); err != nil {
		return nil, err
	}
	zaplogger.Info("hidden gem submitted", zaplogger.Fields{"name": gem.Name, "user_id": userID})
	return gem, nil
}

// Approve publishes a pending gem
func (s *GemService) Approve(id uint) error {
	return s.repo.ApproveGem(id, time.Now().UTC())
}

// Reject removes a gem
func (s *GemService) Reject(id uint) error {
	return s.repo.DeleteGem(id)
}

// ValidCategory reports whether the category is one of the accepted values
func ValidCategory(category string) bool {
	for _, c := range models.GemCategories {
		if c == category {
			return true
		}
	}
	return false
}
