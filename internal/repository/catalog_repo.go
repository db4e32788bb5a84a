package repository

import (
	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

// NewCatalogRepository creates a new repository for the read only catalog tables
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// GetDestinations gets all destinations, best rated first
func (r *CatalogRepository) GetDestinations() ([]models.DestinationModel, error) {
	var destinations []models.DestinationModel
	err := r.DB.Order("rating DESC, created_at DESC").Find(&destinations).Error
	return destinations, err
}

// GetHotels gets all hotels, best rated first
func (r *CatalogRepository) GetHotels() ([]models.HotelModel, error) {
	var hotels []models.HotelModel
	err := r.DB.Order("rating DESC, created_at DESC").Find(&hotels).Error
	return hotels, err
}

// GetCulturalInsights gets all cultural insights, newest first
func (r *CatalogRepository) GetCulturalInsights() ([]models.CulturalInsightModel, error) {
	var insights []models.CulturalInsightModel
	err := r.DB.Order("created_at DESC").Find(&insights).Error
	return insights, err
}
