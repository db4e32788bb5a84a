// Package models contains the models for the LostnLocal API
package models

import (
	"time"
)

const UsersTableName = "users"

// UserModel is an identity record
type UserModel struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UID          string     `gorm:"uniqueIndex;size:64" json:"uid"`
	Name         string     `gorm:"size:255" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	IsAdmin      bool       `gorm:"default:false" json:"isAdmin"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (UserModel) TableName() string {
	return UsersTableName
}
