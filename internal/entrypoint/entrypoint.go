package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gutenberg-app/gutenberg/internal/auth"
	"github.com/gutenberg-app/gutenberg/internal/config"
	"github.com/gutenberg-app/gutenberg/internal/database"
	"github.com/gutenberg-app/gutenberg/internal/database/books"
	"github.com/gutenberg-app/gutenberg/internal/database/readinglists"
	"github.com/gutenberg-app/gutenberg/internal/database/regkeys"
	"github.com/gutenberg-app/gutenberg/internal/database/users"
	http_controllers "github.com/gutenberg-app/gutenberg/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown: wait for SIGINT/SIGTERM, then drain within the
	// configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Gutenberg v%s", version)

	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is not set; refusing to issue unsigned tokens")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	booksRepo := books.NewRepository(db.DB)
	listsRepo := readinglists.NewRepository(db.DB, cfg.ReadingLists.UniqueTitles)
	usersRepo := users.NewRepository(db.DB)
	keysRepo := regkeys.NewRepository(db.DB)

	tokens := auth.NewTokenService(cfg.Auth)
	authService := auth.NewService(usersRepo, keysRepo, tokens, cfg.Auth)
	authController := auth.NewAuthController(authService)
	authMiddleware := auth.NewMiddleware(tokens)

	if cfg.ReadingLists.UniqueTitles {
		log.Printf("Reading list titles are unique per user")
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Books:          booksRepo,
		ReadingLists:   listsRepo,
		Users:          usersRepo,
		AuthController: authController,
		AuthMiddleware: authMiddleware,
		AuthConfig:     cfg.Auth,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg, nil)
}
