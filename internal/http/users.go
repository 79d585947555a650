package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutenberg-app/gutenberg/internal/auth"
	"github.com/gutenberg-app/gutenberg/internal/config"
	"github.com/gutenberg-app/gutenberg/internal/database/users"
)

// UsersController serves the user profile endpoints. Account creation lives
// on the public /register endpoint, not here.
type UsersController struct {
	repo   *users.Repository
	config config.Auth
}

// NewUsersController creates a new users controller.
func NewUsersController(repo *users.Repository, cfg config.Auth) *UsersController {
	return &UsersController{repo: repo, config: cfg}
}

type updateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}

type deleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// GetUser returns a user's profile.
func (controller *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := controller.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	})
}

// UpdateUser merges the supplied profile fields. A supplied password is
// re-hashed; an omitted one leaves the stored hash untouched.
func (controller *UsersController) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if req.FirstName == nil && req.LastName == nil && req.Password == nil {
		respondBadRequest(c, "at least one field is required")
		return
	}

	update := users.Update{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, controller.config.BcryptCost)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				respondBadRequest(c, err.Error())
				return
			}
			respondInternalError(c, err, "hash password")
			return
		}
		update.PasswordHash = &hash
	}

	if err := controller.repo.Update(id, update); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "update user")
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// DeleteUser removes an account. The request must carry the account password;
// a mismatch is a 401, not a 403, since the caller already holds a token.
func (controller *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := controller.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}

	if err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			respondUnauthorized(c, "invalid password")
			return
		}
		respondInternalError(c, err, "verify password")
		return
	}

	if err := controller.repo.Delete(id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "delete user")
		return
	}

	c.JSON(http.StatusOK, IDResponse{ID: id})
}

// GetReadingLists returns every reading list owned by the user.
func (controller *UsersController) GetReadingLists(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	lists, err := controller.repo.ReadingLists(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "list user reading lists")
		return
	}

	c.JSON(http.StatusOK, gin.H{"readingLists": lists, "count": len(lists)})
}
