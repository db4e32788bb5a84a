package repository

import (
	"errors"
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when no user row matches the lookup
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an insert or update collides with an existing email
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates a new repository for the users table
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a user row
func (r *UserRepository) CreateUser(user *models.UserModel) error {
	err := r.DB.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

// CreateUserWithSession inserts the user and its initial session in one
// transaction. makeSession runs after the user insert, once the primary
// key is known.
func (r *UserRepository) CreateUserWithSession(user *models.UserModel, makeSession func(userID uint) (*models.UserSessionModel, error)) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return err
		}
		session, err := makeSession(user.ID)
		if err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

// GetUserByEmail gets a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.UserModel, error) {
	var user models.UserModel
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID gets a user by primary key
func (r *UserRepository) GetUserByID(id uint) (*models.UserModel, error) {
	var user models.UserModel
	err := r.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether another user already owns the email
func (r *UserRepository) EmailTaken(email string, excludeUserID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.UserModel{}).
		Where("email = ? AND id <> ?", email, excludeUserID).
		Count(&count).Error
	return count > 0, err
}

// UpdateUser applies the given column updates to a user row
func (r *UserRepository) UpdateUser(id uint, updates map[string]interface{}) error {
	err := r.DB.Model(&models.UserModel{}).Where("id = ?", id).Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

// TouchLastLogin stamps the last_login column
func (r *UserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.DB.Model(&models.UserModel{}).Where("id = ?", id).
		Update("last_login", at).Error
}
