// Package readinglists provides database operations for reading lists and
// the (list, book) association matrix.
package readinglists

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gutenberg-app/gutenberg/internal/database/books"
	"github.com/gutenberg-app/gutenberg/internal/entities"
)

var (
	ErrNotFound       = errors.New("reading list not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrEntryNotFound  = errors.New("book not found in reading list")
	ErrDuplicateEntry = errors.New("book already in reading list")
	ErrInvalidStatus  = errors.New("invalid book status")
	ErrDuplicateTitle = errors.New("reading list title already in use")
)

// Repository handles all reading-list database operations.
type Repository struct {
	db *gorm.DB
	// uniqueTitles forbids two lists with the same title for one user.
	uniqueTitles bool
}

// NewRepository creates a new reading-lists repository.
func NewRepository(db *gorm.DB, uniqueTitles bool) *Repository {
	return &Repository{db: db, uniqueTitles: uniqueTitles}
}

// Create inserts a reading list for the given owner.
func (r *Repository) Create(userID uint, title string) (uint, error) {
	list := entities.ReadingList{UserID: userID, Title: title}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUserNotFound
		}

		if r.uniqueTitles {
			var existing int64
			err := tx.Model(&entities.ReadingList{}).
				Where("user_id = ? AND title = ?", userID, title).
				Count(&existing).Error
			if err != nil {
				return err
			}
			if existing > 0 {
				return ErrDuplicateTitle
			}
		}

		return tx.Create(&list).Error
	})
	if err != nil {
		return 0, err
	}
	return list.ID, nil
}

// GetByID retrieves a reading list by ID.
func (r *Repository) GetByID(id uint) (*entities.ReadingList, error) {
	var list entities.ReadingList
	err := r.db.First(&list, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateTitle renames a reading list.
func (r *Repository) UpdateTitle(id uint, title string) error {
	result := r.db.Model(&entities.ReadingList{}).Where("id = ?", id).Update("title", title)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a reading list; its matrix rows go with it via the store's
// cascade rule.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.ReadingList{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBooks returns the books in a reading list, narrowed by the same filter
// the catalog listing uses, plus an optional status filter.
func (r *Repository) ListBooks(listID uint, filter books.Filter, statusID *uint) ([]entities.Book, error) {
	ok, err := r.listExists(r.db, listID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	query := r.db.Model(&entities.Book{}).
		Joins("JOIN reading_list_matrix ON reading_list_matrix.book_id = books.id").
		Where("reading_list_matrix.reading_list_id = ?", listID)
	if statusID != nil {
		query = query.Where("reading_list_matrix.status_id = ?", *statusID)
	}

	var result []entities.Book
	err = books.ApplyFilter(query, filter).Find(&result).Error
	return result, err
}

// AddBook inserts a (list, book) pairing with a status. All preconditions are
// re-checked inside the transaction, and the composite unique index on the
// matrix backs the duplicate check.
func (r *Repository) AddBook(listID, bookID, statusID uint) (uint, error) {
	entry := entities.ReadingListEntry{
		ReadingListID: listID,
		BookID:        bookID,
		StatusID:      statusID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.checkParents(tx, listID, bookID); err != nil {
			return err
		}

		var count int64
		err := tx.Model(&entities.ReadingListEntry{}).
			Where("reading_list_id = ? AND book_id = ?", listID, bookID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEntry
		}

		ok, err := r.statusValid(tx, statusID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidStatus
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// RemoveBook deletes a (list, book) pairing.
func (r *Repository) RemoveBook(listID, bookID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ok, err := r.listExists(tx, listID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		result := tx.Where("reading_list_id = ? AND book_id = ?", listID, bookID).
			Delete(&entities.ReadingListEntry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEntryNotFound
		}
		return nil
	})
}

// UpdateStatus changes the status of a book within a list. List, book and
// status are validated as independent preconditions before the pairing is
// touched.
func (r *Repository) UpdateStatus(listID, bookID, statusID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.checkParents(tx, listID, bookID); err != nil {
			return err
		}

		ok, err := r.statusValid(tx, statusID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidStatus
		}

		result := tx.Model(&entities.ReadingListEntry{}).
			Where("reading_list_id = ? AND book_id = ?", listID, bookID).
			Update("status_id", statusID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEntryNotFound
		}
		return nil
	})
}

func (r *Repository) checkParents(tx *gorm.DB, listID, bookID uint) error {
	ok, err := r.listExists(tx, listID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	var count int64
	if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check book existence: %w", err)
	}
	if count == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *Repository) listExists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	err := tx.Model(&entities.ReadingList{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reading list existence: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) statusValid(tx *gorm.DB, statusID uint) (bool, error) {
	var count int64
	err := tx.Model(&entities.BookStatus{}).Where("id = ?", statusID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check status: %w", err)
	}
	return count > 0, nil
}
