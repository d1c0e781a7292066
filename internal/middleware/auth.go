package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forkful/menuboard-v2/backend/internal/auth"
)

const subjectKey = "subject"

// TokenValidator is an interface for validating bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Subject, error)
}

// AuthMiddleware validates the bearer token and stores the resulting Subject
// in the request context. Routes behind it always have an authenticated
// subject; public routes simply omit the middleware.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		subject, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// SubjectFrom returns the authenticated subject stored by AuthMiddleware,
// or nil when the request carries no identity.
func SubjectFrom(c *gin.Context) *auth.Subject {
	value, ok := c.Get(subjectKey)
	if !ok {
		return nil
	}
	subject, ok := value.(*auth.Subject)
	if !ok {
		return nil
	}
	return subject
}
