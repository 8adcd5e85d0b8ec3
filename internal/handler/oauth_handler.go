package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
	"github.com/yourusername/auth-api/internal/service"
	"github.com/yourusername/auth-api/pkg/auth/manager"
)

// OAuthHandler serves the provider login and callback endpoints. Only the
// google provider is wired; anything else is a 404.
type OAuthHandler struct {
	google  *service.GoogleOAuthService
	cookies *manager.CookieManager
	baseURL string
}

// NewOAuthHandler creates a new OAuth handler. google may be nil when the
// provider is not configured; its routes then answer 404.
func NewOAuthHandler(google *service.GoogleOAuthService, cookies *manager.CookieManager, baseURL string) (*OAuthHandler, error) {
	if cookies == nil {
		return nil, fmt.Errorf("cookies must not be nil")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL must not be empty")
	}
	return &OAuthHandler{google: google, cookies: cookies, baseURL: baseURL}, nil
}

func (h *OAuthHandler) providerService(c *gin.Context) *service.GoogleOAuthService {
	if c.Param("provider") != "google" || h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown provider", "error_type": "not_found"})
		return nil
	}
	return h.google
}

// Login redirects the browser to the provider's consent screen.
func (h *OAuthHandler) Login(c *gin.Context) {
	svc := h.providerService(c)
	if svc == nil {
		return
	}

	url, err := svc.AuthURL(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Callback completes the flow after the provider redirects back. Bad input
// is a 400, provider failures a 500, and a linking failure sends the
// browser back to the login page with an error marker so the SPA can show
// a message.
func (h *OAuthHandler) Callback(c *gin.Context) {
	svc := h.providerService(c)
	if svc == nil {
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Provider returned error: %s", errParam), "error_type": "validation"})
		return
	}
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code or state", "error_type": "validation"})
		return
	}

	user, err := svc.Authenticate(c.Request.Context(), code, state)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			respondError(c, err)
		case errors.Is(err, apperrors.ErrUpstream):
			log.Printf("[OAuthHandler] Provider exchange failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OAuth authentication failed", "error_type": "upstream"})
		default:
			log.Printf("[OAuthHandler] Account linking failed: %v", err)
			c.Redirect(http.StatusSeeOther, h.baseURL+"#/login?error=oauth_failed")
		}
		return
	}

	if err := h.cookies.SetAuthCookie(c.Writer, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, h.baseURL+"#/")
}
