// Package users provides database operations for user accounts.
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gutenberg-app/gutenberg/internal/entities"
)

var ErrNotFound = errors.New("user not found")

// Update holds the optional new values for a partial profile update. A nil
// PasswordHash means the stored hash is left untouched.
type Update struct {
	FirstName    *string
	LastName     *string
	PasswordHash *string
}

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user.
func (r *Repository) Create(user *entities.User) (uint, error) {
	if err := r.db.Create(user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether a user with the given email exists.
func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing user: %w", err)
	}
	return count > 0, nil
}

// Update applies a partial profile update.
func (r *Repository) Update(id uint, update Update) error {
	changes := make(map[string]any)
	if update.FirstName != nil {
		changes["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		changes["last_name"] = *update.LastName
	}
	if update.PasswordHash != nil {
		changes["password_hash"] = *update.PasswordHash
	}
	if len(changes) == 0 {
		return nil
	}

	result := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user by ID. The caller verifies the password first.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReadingLists returns all reading lists owned by the user.
func (r *Repository) ReadingLists(userID uint) ([]entities.ReadingList, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("id = ?", userID).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	var lists []entities.ReadingList
	err = r.db.Where("user_id = ?", userID).Find(&lists).Error
	return lists, err
}
