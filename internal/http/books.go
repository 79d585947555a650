package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutenberg-app/gutenberg/internal/database/books"
	"github.com/gutenberg-app/gutenberg/internal/entities"
)

// BooksController serves the book catalog endpoints.
type BooksController struct {
	repo *books.Repository
}

// NewBooksController creates a new books controller.
func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{repo: repo}
}

type createBookRequest struct {
	ISBN13          *string `json:"isbn13" binding:"omitempty,isbn13"`
	ISBN10          *string `json:"isbn10" binding:"omitempty,isbn10"`
	Title           string  `json:"title" binding:"required"`
	Author          string  `json:"author" binding:"required"`
	Publisher       string  `json:"publisher"`
	PublicationDate *string `json:"publicationDate" binding:"omitempty,datetime=2006-01-02"`
	Edition         string  `json:"edition"`
	Genre           string  `json:"genre"`
	Language        string  `json:"language"`
	PageCount       *int    `json:"pageCount" binding:"omitempty,min=0"`
	Summary         string  `json:"summary"`
}

type updateBookRequest struct {
	ISBN13          *string `json:"isbn13" binding:"omitempty,isbn13"`
	ISBN10          *string `json:"isbn10" binding:"omitempty,isbn10"`
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Publisher       *string `json:"publisher"`
	PublicationDate *string `json:"publicationDate" binding:"omitempty,datetime=2006-01-02"`
	Edition         *string `json:"edition"`
	Genre           *string `json:"genre"`
	Language        *string `json:"language"`
	PageCount       *int    `json:"pageCount" binding:"omitempty,min=0"`
	Summary         *string `json:"summary"`
}

// bookFilterQuery binds the optional catalog filters from query parameters.
// Shared with the reading-list book listing.
type bookFilterQuery struct {
	ISBN13               *string `form:"isbn13" binding:"omitempty,isbn13"`
	ISBN10               *string `form:"isbn10" binding:"omitempty,isbn10"`
	Title                *string `form:"title"`
	Author               *string `form:"author"`
	Publisher            *string `form:"publisher"`
	PublicationDateStart *string `form:"publicationDateStart" binding:"omitempty,datetime=2006-01-02"`
	PublicationDateEnd   *string `form:"publicationDateEnd" binding:"omitempty,datetime=2006-01-02"`
	Edition              *string `form:"edition"`
	Genre                *string `form:"genre"`
	Language             *string `form:"language"`
	PageCountMin         *int    `form:"pageCountMin" binding:"omitempty,min=0"`
	PageCountMax         *int    `form:"pageCountMax" binding:"omitempty,min=0"`
	SummaryContains      *string `form:"summaryContains"`
}

func (q bookFilterQuery) filter() books.Filter {
	return books.Filter{
		ISBN13:               q.ISBN13,
		ISBN10:               q.ISBN10,
		Title:                q.Title,
		Author:               q.Author,
		Publisher:            q.Publisher,
		PublicationDateStart: q.PublicationDateStart,
		PublicationDateEnd:   q.PublicationDateEnd,
		Edition:              q.Edition,
		Genre:                q.Genre,
		Language:             q.Language,
		PageCountMin:         q.PageCountMin,
		PageCountMax:         q.PageCountMax,
		SummaryContains:      q.SummaryContains,
	}
}

// CreateBook adds a book to the catalog.
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if req.ISBN13 == nil && req.ISBN10 == nil {
		respondBadRequest(c, "at least one valid ISBN type is required")
		return
	}

	book := entities.Book{
		ISBN13:          req.ISBN13,
		ISBN10:          req.ISBN10,
		Title:           req.Title,
		Author:          req.Author,
		Publisher:       req.Publisher,
		PublicationDate: req.PublicationDate,
		Edition:         req.Edition,
		Genre:           req.Genre,
		Language:        req.Language,
		PageCount:       req.PageCount,
		Summary:         req.Summary,
	}

	id, err := controller.repo.Create(&book)
	if err != nil {
		switch {
		case errors.Is(err, books.ErrBookExists),
			errors.Is(err, books.ErrISBN13InUse),
			errors.Is(err, books.ErrISBN10InUse):
			respondConflict(c, err.Error())
		case errors.Is(err, books.ErrInvalidISBN):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "create book")
		}
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// GetBook returns the full record for a book.
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook merges the supplied fields into a book; everything omitted
// keeps its stored value.
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	update := books.Update{
		ISBN13:          req.ISBN13,
		ISBN10:          req.ISBN10,
		Title:           req.Title,
		Author:          req.Author,
		Publisher:       req.Publisher,
		PublicationDate: req.PublicationDate,
		Edition:         req.Edition,
		Genre:           req.Genre,
		Language:        req.Language,
		PageCount:       req.PageCount,
		Summary:         req.Summary,
	}

	if err := controller.repo.Update(id, update); err != nil {
		switch {
		case errors.Is(err, books.ErrNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, books.ErrISBN13InUse), errors.Is(err, books.ErrISBN10InUse):
			respondConflict(c, err.Error())
		default:
			respondInternalError(c, err, "update book")
		}
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// DeleteBook removes a book from the catalog.
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.repo.Delete(id); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// ListBooks returns the catalog narrowed by the optional filters. With no
// filters set it returns every book.
func (controller *BooksController) ListBooks(c *gin.Context) {
	var query bookFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := controller.repo.List(query.filter())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}
