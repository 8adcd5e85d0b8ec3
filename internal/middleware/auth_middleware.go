package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
	"github.com/yourusername/auth-api/pkg/auth/manager"
)

// UserIDKey is the gin context key the authenticated user's ID is stored under.
const UserIDKey = "user_id"

// AuthMiddleware guards routes behind the session cookie.
type AuthMiddleware struct {
	cookies  *manager.CookieManager
	userRepo repository.UserRepository
}

// NewAuthMiddleware creates the auth middleware
func NewAuthMiddleware(cookies *manager.CookieManager, userRepo repository.UserRepository) (*AuthMiddleware, error) {
	if cookies == nil {
		return nil, fmt.Errorf("cookies must not be nil")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("userRepo must not be nil")
	}
	return &AuthMiddleware{cookies: cookies, userRepo: userRepo}, nil
}

// RequireAuth rejects requests without a valid session cookie and stores the
// user ID in the gin context for handlers downstream.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := m.cookies.ResolveUserID(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Not authenticated",
				"error_type": "unauthorized",
			})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// AdminOnly allows only admin users through. It reads the user row on every
// request so a revoked admin flag takes effect immediately, not when the
// session cookie expires.
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := m.cookies.ResolveUserID(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Not authenticated",
				"error_type": "unauthorized",
			})
			return
		}

		user, err := m.userRepo.GetByID(userID)
		if err != nil {
			// A session for a user that no longer exists is a privilege
			// failure, not a broken session.
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":      "Admin access required",
					"error_type": "forbidden",
				})
				return
			}
			log.Printf("[AuthMiddleware] Failed to load user %d: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"error_type": "internal",
			})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Admin access required",
				"error_type": "forbidden",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
