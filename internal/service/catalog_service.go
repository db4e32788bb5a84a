package service

import (
	"encoding/json"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
	"gorm.io/gorm"
)

// catalogStore is the slice of the catalog repository the service needs
type catalogStore interface {
	GetDestinations() ([]models.DestinationModel, error)
	GetHotels() ([]models.HotelModel, error)
	GetCulturalInsights() ([]models.CulturalInsightModel, error)
}

// HotelView is a hotel with the amenities JSON decoded
type HotelView struct {
	models.HotelModel
	Amenities []string `json:"amenities"`
}

// CatalogService serves the read only destination, hotel and insight catalogs
type CatalogService struct {
	repo catalogStore
}

// NewCatalogService creates a new service for the catalog reads
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{repo: repository.NewCatalogRepository(db)}
}

// GetDestinations returns all destinations, best rated first
func (s *CatalogService) GetDestinations() ([]models.DestinationModel, error) {
	return s.repo.GetDestinations()
}

// GetHotels returns all hotels with decoded amenity lists
func (s *CatalogService) GetHotels() ([]HotelView, error) {
	hotels, err := s.repo.GetHotels()
	if err != nil {
		return nil, err
	}

	views := make([]HotelView, 0, len(hotels))
	for _, hotel := range hotels {
		view := HotelView{HotelModel: hotel, Amenities: []string{}}
		if hotel.Amenities != "" {
			if err := json.Unmarshal([]byte(hotel.Amenities), &view.Amenities); err != nil {
				zaplogger.Warn("bad amenities payload", zaplogger.Fields{"hotel_id": hotel.ID})
				view.Amenities = []string{}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// GetCulturalInsights returns all cultural insights, newest first
func (s *CatalogService) GetCulturalInsights() ([]models.CulturalInsightModel, error) {
	return s.repo.GetCulturalInsights()
}
