package models

import (
	"time"
)

const HiddenGemsTableName = "hidden_gems"

// GemCategories are the accepted hidden gem categories
var GemCategories = []string{"nature", "cultural", "adventure", "food", "other"}

// HiddenGemModel is a user submitted spot, hidden until an admin approves it
type HiddenGemModel struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255" json:"name"`
	Location    string     `gorm:"size:255" json:"location"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:32" json:"category"`
	SubmittedBy uint       `gorm:"index" json:"submittedBy"`
	Approved    bool       `gorm:"default:false;index" json:"approved"`
	ApprovedAt  *time.Time `json:"approvedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (HiddenGemModel) TableName() string {
	return HiddenGemsTableName
}
