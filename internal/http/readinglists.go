package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutenberg-app/gutenberg/internal/database/readinglists"
)

// ReadingListsController serves the reading-list endpoints, including the
// per-list book matrix.
type ReadingListsController struct {
	repo *readinglists.Repository
}

// NewReadingListsController creates a new reading-lists controller.
func NewReadingListsController(repo *readinglists.Repository) *ReadingListsController {
	return &ReadingListsController{repo: repo}
}

type createReadingListRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Title  string `json:"title" binding:"required"`
}

type updateReadingListRequest struct {
	Title string `json:"title" binding:"required"`
}

type addBookRequest struct {
	BookID   uint `json:"bookId" binding:"required"`
	StatusID uint `json:"statusId" binding:"required"`
}

type updateStatusRequest struct {
	StatusID uint `json:"statusId" binding:"required"`
}

type listBooksQuery struct {
	bookFilterQuery
	StatusID *uint `form:"statusId"`
}

// CreateReadingList creates a reading list for the given owner.
func (controller *ReadingListsController) CreateReadingList(c *gin.Context) {
	var req createReadingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	id, err := controller.repo.Create(req.UserID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, readinglists.ErrUserNotFound):
			respondNotFound(c, "user")
		case errors.Is(err, readinglists.ErrDuplicateTitle):
			respondConflict(c, err.Error())
		default:
			respondInternalError(c, err, "create reading list")
		}
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// GetReadingList returns a reading list record.
func (controller *ReadingListsController) GetReadingList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := controller.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, readinglists.ErrNotFound) {
			respondNotFound(c, "reading list")
			return
		}
		respondInternalError(c, err, "get reading list")
		return
	}

	c.JSON(http.StatusOK, list)
}

// UpdateReadingList renames a reading list.
func (controller *ReadingListsController) UpdateReadingList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateReadingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := controller.repo.UpdateTitle(id, req.Title); err != nil {
		if errors.Is(err, readinglists.ErrNotFound) {
			respondNotFound(c, "reading list")
			return
		}
		respondInternalError(c, err, "update reading list")
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// DeleteReadingList removes a reading list and its matrix rows.
func (controller *ReadingListsController) DeleteReadingList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.repo.Delete(id); err != nil {
		if errors.Is(err, readinglists.ErrNotFound) {
			respondNotFound(c, "reading list")
			return
		}
		respondInternalError(c, err, "delete reading list")
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// ListBooks returns the books in a reading list, narrowed by the catalog
// filters plus an optional status.
func (controller *ReadingListsController) ListBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query listBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := controller.repo.ListBooks(id, query.filter(), query.StatusID)
	if err != nil {
		if errors.Is(err, readinglists.ErrNotFound) {
			respondNotFound(c, "reading list")
			return
		}
		respondInternalError(c, err, "list reading list books")
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

// AddBook pairs a book with a reading list under a status.
func (controller *ReadingListsController) AddBook(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	entryID, err := controller.repo.AddBook(listID, req.BookID, req.StatusID)
	if err != nil {
		switch {
		case errors.Is(err, readinglists.ErrNotFound):
			respondNotFound(c, "reading list")
		case errors.Is(err, readinglists.ErrBookNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, readinglists.ErrDuplicateEntry):
			respondConflict(c, err.Error())
		case errors.Is(err, readinglists.ErrInvalidStatus):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "add book to reading list")
		}
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: entryID})
}

// RemoveBook drops a (list, book) pairing.
func (controller *ReadingListsController) RemoveBook(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	if err := controller.repo.RemoveBook(listID, bookID); err != nil {
		switch {
		case errors.Is(err, readinglists.ErrNotFound):
			respondNotFound(c, "reading list")
		case errors.Is(err, readinglists.ErrEntryNotFound):
			respondNotFound(c, "book in reading list")
		default:
			respondInternalError(c, err, "remove book from reading list")
		}
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: bookID})
}

// UpdateStatus changes the status of a book within a reading list.
func (controller *ReadingListsController) UpdateStatus(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := controller.repo.UpdateStatus(listID, bookID, req.StatusID); err != nil {
		switch {
		case errors.Is(err, readinglists.ErrNotFound):
			respondNotFound(c, "reading list")
		case errors.Is(err, readinglists.ErrBookNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, readinglists.ErrEntryNotFound):
			respondNotFound(c, "book in reading list")
		case errors.Is(err, readinglists.ErrInvalidStatus):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "update book status")
		}
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: bookID})
}
