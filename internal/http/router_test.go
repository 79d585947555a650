package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gutenberg-app/gutenberg/internal/auth"
	"github.com/gutenberg-app/gutenberg/internal/config"
	"github.com/gutenberg-app/gutenberg/internal/database"
	"github.com/gutenberg-app/gutenberg/internal/database/books"
	"github.com/gutenberg-app/gutenberg/internal/database/readinglists"
	"github.com/gutenberg-app/gutenberg/internal/database/regkeys"
	"github.com/gutenberg-app/gutenberg/internal/database/users"
)

// testServer wires the full router against a throwaway database, with one
// registered user and a valid token for them.
type testServer struct {
	router *gin.Engine
	db     *database.Database
	token  string
	userID uint
}

func setupTestServer(t *testing.T) (*testServer, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authCfg := config.Auth{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Minute,
		BcryptCost:  bcrypt.MinCost,
	}

	usersRepo := users.NewRepository(db.DB)
	keysRepo := regkeys.NewRepository(db.DB)
	tokens := auth.NewTokenService(authCfg)
	authService := auth.NewService(usersRepo, keysRepo, tokens, authCfg)

	router := NewRouter(RouterConfig{
		Database:       db,
		Books:          books.NewRepository(db.DB),
		ReadingLists:   readinglists.NewRepository(db.DB, false),
		Users:          usersRepo,
		AuthController: auth.NewAuthController(authService),
		AuthMiddleware: auth.NewMiddleware(tokens),
		AuthConfig:     authCfg,
		Version:        "test",
	})

	require.NoError(t, keysRepo.Create("test-key"))
	token, err := authService.Register(auth.RegisterInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "secret",
		RegistrationKey: "test-key",
	})
	require.NoError(t, err)

	user, err := usersRepo.GetByEmail("ada@example.com")
	require.NoError(t, err)

	server := &testServer{
		router: router,
		db:     db,
		token:  token,
		userID: user.ID,
	}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return server, cleanup
}

// do performs an authenticated JSON request against the test router.
func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.TokenHeader, s.token)
	s.router.ServeHTTP(w, req)
	return w
}

// createBook inserts a book through the API and returns its id.
func (s *testServer) createBook(t *testing.T, body gin.H) uint {
	t.Helper()
	w := s.do("POST", "/book", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp IDResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// createList inserts a reading list through the API and returns its id.
func (s *testServer) createList(t *testing.T, title string) uint {
	t.Helper()
	w := s.do("POST", "/readingList", gin.H{"userId": s.userID, "title": title})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp IDResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// statusID resolves one of the seeded status names.
func (s *testServer) statusID(t *testing.T, name string) uint {
	t.Helper()
	status, err := s.db.GetStatusByName(name)
	require.NoError(t, err)
	return status.ID
}
