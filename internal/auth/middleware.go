package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenHeader is the request header carrying the identity token.
const TokenHeader = "Token"

// ContextKeyUserID is the gin context key holding the authenticated user ID.
const ContextKeyUserID = "auth_user_id"

// Middleware gates requests on a verified identity token. It never touches
// store state; it only attaches the decoded user ID to the request context.
type Middleware struct {
	tokens *TokenService
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handler returns a gin handler that rejects requests without a valid token.
// A missing token is a 403, an invalid or expired one a 401.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}

		userID, err := m.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 when the request did not pass through the middleware.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}
