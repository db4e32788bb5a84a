package models

import (
	"time"
)

const (
	DestinationsTableName     = "destinations"
	HotelsTableName           = "hotels"
	CulturalInsightsTableName = "cultural_insights"
)

// DestinationModel is a curated travel destination
type DestinationModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255" json:"name"`
	Country     string    `gorm:"size:255" json:"country"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	Rating      float64   `gorm:"index" json:"rating"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (DestinationModel) TableName() string {
	return DestinationsTableName
}

// HotelModel is a listed hotel. Amenities is a JSON encoded string list,
// decoded into the response projection by the catalog service.
type HotelModel struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255" json:"name"`
	Location      string    `gorm:"size:255" json:"location"`
	Description   string    `gorm:"type:text" json:"description"`
	ImageURL      string    `gorm:"size:512" json:"imageUrl"`
	Rating        float64   `gorm:"index" json:"rating"`
	PricePerNight float64   `json:"pricePerNight"`
	Amenities     string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (HotelModel) TableName() string {
	return HotelsTableName
}

// CulturalInsightModel is an editorial article about a region
type CulturalInsightModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	Region    string    `gorm:"size:255" json:"region"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `gorm:"size:512" json:"imageUrl"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (CulturalInsightModel) TableName() string {
	return CulturalInsightsTableName
}
