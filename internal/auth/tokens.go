package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gutenberg-app/gutenberg/internal/config"
)

// DefaultTokenExpiry is used when no expiry is configured.
const DefaultTokenExpiry = time.Hour

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies the signed identity tokens returned by
// registration and login.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a token service from the auth configuration.
func NewTokenService(cfg config.Auth) *TokenService {
	expiry := cfg.TokenExpiry
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		expiry: expiry,
	}
}

// Issue produces a signed token embedding the user ID.
func (t *TokenService) Issue(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(t.expiry).Unix(),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// user ID. Any failure collapses into ErrInvalidToken; callers get no detail
// about why a token was rejected.
func (t *TokenService) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	// Numeric JSON claims decode as float64
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}
