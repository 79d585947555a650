// Package regkeys provides database operations for registration keys, the
// single-use invitation codes gating account creation.
package regkeys

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gutenberg-app/gutenberg/internal/entities"
)

// ErrInvalidKey covers both an unknown code and a code that was already
// used; callers must not be able to tell the two apart.
var ErrInvalidKey = errors.New("invalid registration key or key already used")

// Repository handles all registration-key database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new registration-keys repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create provisions a new unused key.
func (r *Repository) Create(code string) error {
	return r.db.Create(&entities.RegistrationKey{Code: code}).Error
}

// Consume marks a key used. The used flag is re-checked under the write so
// two concurrent registrations cannot both spend the same key. The mark
// commits on its own: a registration that fails after Consume does not
// refund the key.
func (r *Repository) Consume(code string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var key entities.RegistrationKey
		err := tx.Where("key_code = ?", code).First(&key).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidKey
		}
		if err != nil {
			return err
		}
		if key.Used {
			return ErrInvalidKey
		}

		return tx.Model(&entities.RegistrationKey{}).
			Where("key_code = ?", code).
			Update("used", true).Error
	})
}

// IsUsed reports the used flag for a key.
func (r *Repository) IsUsed(code string) (bool, error) {
	var key entities.RegistrationKey
	err := r.db.Where("key_code = ?", code).First(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrInvalidKey
	}
	if err != nil {
		return false, err
	}
	return key.Used, nil
}
