package manager

import (
	"fmt"
	"net/http"

	"github.com/yourusername/auth-api/pkg/auth"
)

// AuthCookieName is the name of the session cookie.
const AuthCookieName = "auth_token"

// CookieManager writes and reads the session cookie. The cookie is HttpOnly
// with SameSite=Lax; Lax rather than Strict because the OAuth callback is a
// cross-site redirect that must carry the cookie it just received.
type CookieManager struct {
	tokens *auth.TokenService
	path   string
	secure bool
}

// NewCookieManager creates a cookie manager. secure should be false only in
// local development over plain HTTP.
func NewCookieManager(tokens *auth.TokenService, secure bool) (*CookieManager, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token service must not be nil")
	}
	return &CookieManager{
		tokens: tokens,
		path:   "/",
		secure: secure,
	}, nil
}

// SetAuthCookie issues a session token for the user and writes it as a
// cookie on the response.
func (m *CookieManager) SetAuthCookie(w http.ResponseWriter, userID uint) error {
	token, err := m.tokens.Issue(userID)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     m.path,
		MaxAge:   int(m.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearAuthCookie removes the session cookie from the client.
func (m *CookieManager) ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     m.path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveUserID extracts and validates the session cookie from the request.
// It returns false for a missing, expired or otherwise invalid cookie.
func (m *CookieManager) ResolveUserID(r *http.Request) (uint, bool) {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || cookie.Value == "" {
		return 0, false
	}
	claims, err := m.tokens.Parse(cookie.Value)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}
