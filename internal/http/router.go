package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// /register, /login and /health stay public; every resource group sits
// behind the token middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	cfg.AuthController.RegisterRoutes(router)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	booksController := NewBooksController(cfg.Books)
	listsController := NewReadingListsController(cfg.ReadingLists)
	usersController := NewUsersController(cfg.Users, cfg.AuthConfig)

	authorized := cfg.AuthMiddleware.Handler()

	bookRoutes := router.Group("/book", authorized)
	{
		bookRoutes.POST("", booksController.CreateBook)
		bookRoutes.GET("", booksController.ListBooks)
		bookRoutes.GET("/:id", booksController.GetBook)
		bookRoutes.PUT("/:id", booksController.UpdateBook)
		bookRoutes.DELETE("/:id", booksController.DeleteBook)
	}

	listRoutes := router.Group("/readingList", authorized)
	{
		listRoutes.POST("", listsController.CreateReadingList)
		listRoutes.GET("/:id", listsController.GetReadingList)
		listRoutes.PUT("/:id", listsController.UpdateReadingList)
		listRoutes.DELETE("/:id", listsController.DeleteReadingList)
		listRoutes.GET("/:id/books", listsController.ListBooks)
		listRoutes.POST("/:id/book", listsController.AddBook)
		listRoutes.PUT("/:id/book/:bookId", listsController.UpdateStatus)
		listRoutes.DELETE("/:id/book/:bookId", listsController.RemoveBook)
	}

	userRoutes := router.Group("/user", authorized)
	{
		userRoutes.GET("/:id", usersController.GetUser)
		userRoutes.PUT("/:id", usersController.UpdateUser)
		userRoutes.DELETE("/:id", usersController.DeleteUser)
		userRoutes.GET("/:id/readingLists", usersController.GetReadingLists)
	}

	return router
}
