// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	id, err := repo.Create(&entities.Book{Title: "Moby-Dick", ...})
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gutenberg-app/gutenberg/internal/entities"
	"github.com/gutenberg-app/gutenberg/internal/validate"
)

var (
	ErrNotFound    = errors.New("book not found")
	ErrISBN13InUse = errors.New("ISBN-13 already in use")
	ErrISBN10InUse = errors.New("ISBN-10 already in use")
	ErrBookExists  = errors.New("book already exists")
	ErrInvalidISBN = errors.New("at least one valid ISBN is required")
)

// Filter holds the optional predicates for a catalog query. A nil field
// contributes no clause, so an empty filter matches every book.
type Filter struct {
	ISBN13               *string
	ISBN10               *string
	Title                *string
	Author               *string
	Publisher            *string
	PublicationDateStart *string
	PublicationDateEnd   *string
	Edition              *string
	Genre                *string
	Language             *string
	PageCountMin         *int
	PageCountMax         *int
	SummaryContains      *string
}

// Update holds the optional new values for a partial book update. Only
// non-nil fields are written; everything else keeps its stored value.
type Update struct {
	ISBN13          *string
	ISBN10          *string
	Title           *string
	Author          *string
	Publisher       *string
	PublicationDate *string
	Edition         *string
	Genre           *string
	Language        *string
	PageCount       *int
	Summary         *string
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a book after checking its ISBNs for uniqueness. The book
// must carry at least one valid ISBN; the unique indexes on isbn13/isbn10
// back the pre-check so concurrent creates cannot both commit.
func (r *Repository) Create(book *entities.Book) (uint, error) {
	if !hasValidISBN(book.ISBN13, book.ISBN10) {
		return 0, ErrInvalidISBN
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		isbn13InUse, isbn10InUse, err := isbnInUse(tx, book.ISBN13, book.ISBN10, 0)
		if err != nil {
			return err
		}
		if isbn13InUse && isbn10InUse {
			return ErrBookExists
		}
		if isbn13InUse {
			return ErrISBN13InUse
		}
		if isbn10InUse {
			return ErrISBN10InUse
		}
		return tx.Create(book).Error
	})
	if err != nil {
		return 0, err
	}
	return book.ID, nil
}

// GetByID retrieves a book by ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Exists reports whether a book with the given ID exists.
func (r *Repository) Exists(id uint) (bool, error) {
	return exists(r.db, id)
}

// Update applies a partial update. Supplied ISBNs go through the same
// conflict checks as Create, ignoring the book being updated.
func (r *Repository) Update(id uint, update Update) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		isbn13InUse, isbn10InUse, err := isbnInUse(tx, update.ISBN13, update.ISBN10, id)
		if err != nil {
			return err
		}
		if isbn13InUse {
			return ErrISBN13InUse
		}
		if isbn10InUse {
			return ErrISBN10InUse
		}

		changes := update.changes()
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&entities.Book{}).Where("id = ?", id).Updates(changes).Error
	})
}

// Delete removes a book by ID.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all books matching the filter, unpaginated.
func (r *Repository) List(filter Filter) ([]entities.Book, error) {
	var books []entities.Book
	err := ApplyFilter(r.db.Model(&entities.Book{}), filter).Find(&books).Error
	return books, err
}

// ApplyFilter adds the filter's predicates to an existing book query.
// Shared with the reading-list repository for its joined book listing.
func ApplyFilter(query *gorm.DB, f Filter) *gorm.DB {
	query = likeClause(query, "books.isbn13", f.ISBN13)
	query = likeClause(query, "books.isbn10", f.ISBN10)
	query = likeClause(query, "books.title", f.Title)
	query = likeClause(query, "books.author", f.Author)
	query = likeClause(query, "books.publisher", f.Publisher)
	query = likeClause(query, "books.edition", f.Edition)
	query = likeClause(query, "books.genre", f.Genre)
	query = likeClause(query, "books.language", f.Language)
	query = likeClause(query, "books.summary", f.SummaryContains)

	if f.PublicationDateStart != nil {
		query = query.Where("books.publication_date >= ?", *f.PublicationDateStart)
	}
	if f.PublicationDateEnd != nil {
		query = query.Where("books.publication_date <= ?", *f.PublicationDateEnd)
	}
	if f.PageCountMin != nil {
		query = query.Where("books.page_count >= ?", *f.PageCountMin)
	}
	if f.PageCountMax != nil {
		query = query.Where("books.page_count <= ?", *f.PageCountMax)
	}

	return query
}

// likeClause adds a case-insensitive substring match when the value is set.
func likeClause(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return query
	}
	return query.Where("LOWER("+column+") LIKE LOWER(?)", "%"+*value+"%")
}

func exists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	err := tx.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return count > 0, nil
}

// isbnInUse reports, per ISBN type, whether another book already claims the
// supplied value. excludeID skips the book being updated.
func isbnInUse(tx *gorm.DB, isbn13, isbn10 *string, excludeID uint) (bool, bool, error) {
	var isbn13InUse, isbn10InUse bool

	if isbn13 != nil {
		var count int64
		query := tx.Model(&entities.Book{}).Where("isbn13 = ?", *isbn13)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return false, false, err
		}
		isbn13InUse = count > 0
	}

	if isbn10 != nil {
		var count int64
		query := tx.Model(&entities.Book{}).Where("isbn10 = ?", *isbn10)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return false, false, err
		}
		isbn10InUse = count > 0
	}

	return isbn13InUse, isbn10InUse, nil
}

func hasValidISBN(isbn13, isbn10 *string) bool {
	if isbn13 != nil && validate.ISBN13(*isbn13) {
		return true
	}
	if isbn10 != nil && validate.ISBN10(*isbn10) {
		return true
	}
	return false
}

func (u Update) changes() map[string]any {
	changes := make(map[string]any)
	if u.ISBN13 != nil {
		changes["isbn13"] = *u.ISBN13
	}
	if u.ISBN10 != nil {
		changes["isbn10"] = *u.ISBN10
	}
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Author != nil {
		changes["author"] = *u.Author
	}
	if u.Publisher != nil {
		changes["publisher"] = *u.Publisher
	}
	if u.PublicationDate != nil {
		changes["publication_date"] = *u.PublicationDate
	}
	if u.Edition != nil {
		changes["edition"] = *u.Edition
	}
	if u.Genre != nil {
		changes["genre"] = *u.Genre
	}
	if u.Language != nil {
		changes["language"] = *u.Language
	}
	if u.PageCount != nil {
		changes["page_count"] = *u.PageCount
	}
	if u.Summary != nil {
		changes["summary"] = *u.Summary
	}
	return changes
}
