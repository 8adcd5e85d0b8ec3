package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-api/internal/handler/dto"
	"github.com/yourusername/auth-api/internal/middleware"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
	"github.com/yourusername/auth-api/internal/service"
	"github.com/yourusername/auth-api/pkg/auth/manager"
)

// AuthHandler serves registration, login, logout and profile endpoints.
type AuthHandler struct {
	authService *service.AuthService
	cookies     *manager.CookieManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cookies *manager.CookieManager) (*AuthHandler, error) {
	if authService == nil {
		return nil, fmt.Errorf("authService must not be nil")
	}
	if cookies == nil {
		return nil, fmt.Errorf("cookies must not be nil")
	}
	return &AuthHandler{authService: authService, cookies: cookies}, nil
}

// RegisterRequest is the register endpoint payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
	FullName string `json:"fullname"`
}

// Register creates an account and signs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, password and email are required", "error_type": "validation"})
		return
	}

	user, err := h.authService.Register(req.Username, req.Password, req.Email, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cookies.SetAuthCookie(c.Writer, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Registration successful",
		"user":    dto.NewUserView(user),
	})
}

// LoginRequest is the login endpoint payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required", "error_type": "validation"})
		return
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cookies.SetAuthCookie(c.Writer, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    dto.NewUserView(user),
	})
}

// Logout clears the session cookie. Always succeeds, signed in or not.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.ClearAuthCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// Me returns the authenticated user's profile. A valid cookie pointing at a
// deleted user reads as not authenticated.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(middleware.UserIDKey)

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: session user no longer exists", apperrors.ErrUnauthorized))
		return
	}

	c.JSON(http.StatusOK, dto.NewUserView(user))
}

// UpdateProfileRequest is the profile update payload.
type UpdateProfileRequest struct {
	FullName string `json:"fullname" binding:"required"`
}

// UpdateProfile changes the authenticated user's display name.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint(middleware.UserIDKey)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fullname is required", "error_type": "validation"})
		return
	}

	user, err := h.authService.UpdateFullName(userID, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.NewUserView(user),
	})
}
