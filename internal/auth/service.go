package auth

import (
	"errors"
	"fmt"

	"github.com/gutenberg-app/gutenberg/internal/config"
	"github.com/gutenberg-app/gutenberg/internal/database/regkeys"
	"github.com/gutenberg-app/gutenberg/internal/database/users"
	"github.com/gutenberg-app/gutenberg/internal/entities"
)

var (
	ErrEmailInUse = errors.New("user already exists")
	// ErrInvalidRegistrationKey covers unknown and already-used keys alike.
	ErrInvalidRegistrationKey = errors.New("invalid registration key or key already used")
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password, so the login endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterInput carries the already-validated registration fields.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	RegistrationKey string
}

// Service handles registration and login.
type Service struct {
	users  *users.Repository
	keys   *regkeys.Repository
	tokens *TokenService
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(users *users.Repository, keys *regkeys.Repository, tokens *TokenService, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		keys:   keys,
		tokens: tokens,
		config: cfg,
	}
}

// Register creates a user gated by a single-use registration key and returns
// a token for the new account.
//
// The key is consumed before the user row is written and stays consumed if a
// later step fails: keys are single-use invitations, not a transactional
// resource, so a failed registration burns its key.
func (s *Service) Register(in RegisterInput) (string, error) {
	exists, err := s.users.EmailExists(in.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrEmailInUse
	}

	if err := s.keys.Consume(in.RegistrationKey); err != nil {
		if errors.Is(err, regkeys.ErrInvalidKey) {
			return "", ErrInvalidRegistrationKey
		}
		return "", err
	}

	hash, err := HashPassword(in.Password, s.config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}
	userID, err := s.users.Create(user)
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.tokens.Issue(userID)
}

// Login validates credentials and returns a token for the user.
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	return s.tokens.Issue(user.ID)
}
