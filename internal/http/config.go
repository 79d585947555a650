package http

import (
	"github.com/gutenberg-app/gutenberg/internal/auth"
	"github.com/gutenberg-app/gutenberg/internal/config"
	"github.com/gutenberg-app/gutenberg/internal/database"
	"github.com/gutenberg-app/gutenberg/internal/database/books"
	"github.com/gutenberg-app/gutenberg/internal/database/readinglists"
	"github.com/gutenberg-app/gutenberg/internal/database/users"
)

// RouterConfig holds all dependencies needed to construct the HTTP router.
// Using a config struct improves testability and reduces parameter count.
type RouterConfig struct {
	Database *database.Database

	Books        *books.Repository
	ReadingLists *readinglists.Repository
	Users        *users.Repository

	AuthController *auth.AuthController
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth

	Version string
}
