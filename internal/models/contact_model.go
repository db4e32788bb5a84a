package models

import (
	"time"
)

const ContactMessagesTableName = "contact_messages"

// ContactMessageModel is a message submitted through the contact form.
// UserID is set when the sender was authenticated.
type ContactMessageModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Message   string    `gorm:"type:text" json:"message"`
	UserID    *uint     `gorm:"index" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ContactMessageModel) TableName() string {
	return ContactMessagesTableName
}
