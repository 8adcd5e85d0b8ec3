package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

const (
	googleProvider    = "google"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	// usernameProbeLimit bounds the numbered-suffix search when deriving a
	// username from an email address.
	usernameProbeLimit = 100
)

// ErrIncompleteProfile is returned when the provider's userinfo response
// lacks the fields needed to create or link an account.
var ErrIncompleteProfile = errors.New("provider returned incomplete profile")

// GoogleProfile is the subset of the userinfo response the linker needs.
type GoogleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleOAuthService drives the authorization-code flow against Google and
// maps the resulting identity onto a local user.
type GoogleOAuthService struct {
	atomic     repository.Atomic
	states     repository.OAuthStateStore
	oauth      *oauth2.Config
	httpClient *http.Client
}

// GoogleOAuthConfig holds the provider credentials and callback location.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewGoogleOAuthService creates the Google OAuth service.
func NewGoogleOAuthService(atomic repository.Atomic, states repository.OAuthStateStore, cfg GoogleOAuthConfig) (*GoogleOAuthService, error) {
	if atomic == nil {
		return nil, fmt.Errorf("atomic must not be nil")
	}
	if states == nil {
		return nil, fmt.Errorf("states must not be nil")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("google client credentials must not be empty")
	}
	if cfg.RedirectURL == "" {
		return nil, fmt.Errorf("redirect URL must not be empty")
	}
	return &GoogleOAuthService{
		atomic: atomic,
		states: states,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// AuthURL issues a fresh state token and returns the provider URL to
// redirect the user to.
func (s *GoogleOAuthService) AuthURL(ctx context.Context) (string, error) {
	state, err := s.states.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create oauth state: %w", err)
	}
	return s.oauth.AuthCodeURL(state), nil
}

// Authenticate completes the callback leg: it redeems the state, exchanges
// the code for a token, fetches the Google profile and resolves it to a
// local user, creating or linking an account as needed.
func (s *GoogleOAuthService) Authenticate(ctx context.Context, code, state string) (*entity.User, error) {
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown or expired state", apperrors.ErrValidation)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange failed: %v", apperrors.ErrUpstream, err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.linkProfile(profile)
}

func (s *GoogleOAuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: userinfo request failed: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode userinfo: %v", apperrors.ErrUpstream, err)
	}
	return &profile, nil
}

// linkProfile resolves a Google profile to a local user inside one
// transaction. Resolution order: existing provider link, then a user with
// the same email, then a brand new account.
func (s *GoogleOAuthService) linkProfile(profile *GoogleProfile) (*entity.User, error) {
	if profile.ID == "" || profile.Email == "" {
		return nil, fmt.Errorf("%w: missing id or email", ErrIncompleteProfile)
	}

	var resolved *entity.User
	err := s.atomic.Transact(func(users repository.UserRepository, links repository.OAuthAccountRepository) error {
		link, err := links.GetByProviderUserID(googleProvider, profile.ID)
		if err == nil {
			resolved, err = users.GetByID(link.UserID)
			return err
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		user, err := users.GetByEmail(profile.Email)
		if err == nil {
			if err := links.Create(&entity.OAuthAccount{
				UserID:         user.ID,
				Provider:       googleProvider,
				ProviderUserID: profile.ID,
				Email:          profile.Email,
			}); err != nil {
				return err
			}
			log.Printf("[GoogleOAuth] Linked google identity to existing user %d", user.ID)
			resolved = user
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		user, err = s.createUserFromProfile(users, profile)
		if err != nil {
			return err
		}
		if err := links.Create(&entity.OAuthAccount{
			UserID:         user.ID,
			Provider:       googleProvider,
			ProviderUserID: profile.ID,
			Email:          profile.Email,
		}); err != nil {
			return err
		}
		log.Printf("[GoogleOAuth] Created user %d (%s) from google profile", user.ID, user.Username)
		resolved = user
		return nil
	})
	if err != nil {
		// Two callbacks for the same new identity can race; the loser hits
		// the unique link constraint and retries as a plain lookup.
		if errors.Is(err, apperrors.ErrConflict) {
			return s.resolveExistingLink(profile.ID)
		}
		return nil, err
	}
	return resolved, nil
}

func (s *GoogleOAuthService) resolveExistingLink(providerUserID string) (*entity.User, error) {
	var resolved *entity.User
	err := s.atomic.Transact(func(users repository.UserRepository, links repository.OAuthAccountRepository) error {
		link, err := links.GetByProviderUserID(googleProvider, providerUserID)
		if err != nil {
			return err
		}
		resolved, err = users.GetByID(link.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// createUserFromProfile makes a password-less account. The username is the
// email's local part; on collision a numeric suffix is probed, falling back
// to a random suffix if the numbered range is exhausted.
func (s *GoogleOAuthService) createUserFromProfile(users repository.UserRepository, profile *GoogleProfile) (*entity.User, error) {
	base := profile.Email
	if at := strings.Index(base, "@"); at >= 0 {
		base = base[:at]
	}
	if base == "" {
		base = "user"
	}

	username, err := s.pickUsername(users, base)
	if err != nil {
		return nil, err
	}

	fullName := profile.Name
	if fullName == "" {
		fullName = profile.Email
	}

	user := &entity.User{
		Username: username,
		Email:    profile.Email,
		FullName: fullName,
	}
	if err := users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *GoogleOAuthService) pickUsername(users repository.UserRepository, base string) (string, error) {
	candidate := base
	for i := 1; i <= usernameProbeLimit; i++ {
		_, err := users.GetByUsername(candidate)
		if errors.Is(err, apperrors.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
