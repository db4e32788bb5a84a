package service

import (
	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
	"gorm.io/gorm"
)

// contactStore is the slice of the contact repository the service needs
type contactStore interface {
	CreateMessage(msg *models.ContactMessageModel) error
}

// ContactSubmission is an accepted contact payload after handler validation
type ContactSubmission struct {
	Name    string
	Email   string
	Subject string
	Message string
	// UserID is set when the sender presented a valid bearer token
	UserID *uint
}

// ContactService stores contact form submissions
type ContactService struct {
	repo contactStore
}

// NewContactService creates a new service for the contact API
func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{repo: repository.NewContactRepository(db)}
}

// Submit stores one contact message
func (s *ContactService) Submit(input ContactSubmission) error {
	msg := &models.ContactMessageModel{
		Name:    input.Name,
		Email:   normalizeEmail(input.Email),
		Subject: input.Subject,
		Message: input.Message,
		UserID:  input.UserID,
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return err
	}
	zaplogger.Info("contact message submitted", zaplogger.Fields{"subject": msg.Subject, "email": msg.Email})
	return nil
}
