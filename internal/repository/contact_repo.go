package repository

import (
	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

// NewContactRepository creates a new repository for the contact_messages table
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

// CreateMessage inserts a contact message row
func (r *ContactRepository) CreateMessage(msg *models.ContactMessageModel) error {
	return r.DB.Create(msg).Error
}
