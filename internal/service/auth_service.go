package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
	"github.com/yourusername/auth-api/pkg/auth/password"
)

// AuthService handles registration, password login and profile updates.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher

	// dummyHash is verified against when the username does not exist so a
	// login attempt takes the same time either way.
	dummyHash string
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo repository.UserRepository, hasher *password.Hasher) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("userRepo must not be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("hasher must not be nil")
	}
	dummyHash, err := hasher.Hash("decoy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare decoy hash: %w", err)
	}
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a new account with a username, password and optional
// email. The username must not be taken.
func (s *AuthService) Register(username, pass, email, fullName string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	fullName = strings.TrimSpace(fullName)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if len(username) > 50 {
		return nil, fmt.Errorf("%w: username must be at most 50 characters", apperrors.ErrValidation)
	}
	if pass == "" {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if len(email) > 255 {
		return nil, fmt.Errorf("%w: email must be at most 255 characters", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", apperrors.ErrConflict)
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("[AuthService] Registered user %d (%s)", user.ID, user.Username)
	return user, nil
}

// Login verifies a username and password pair. Any failure, including an
// unknown username or a password-less OAuth account, returns the same
// ErrUnauthorized so callers cannot tell which usernames exist.
func (s *AuthService) Login(username, pass string) (*entity.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		// Burn the same hashing time as a real check.
		_, _ = s.hasher.Verify(pass, s.dummyHash)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !user.HasPassword() {
		_, _ = s.hasher.Verify(pass, s.dummyHash)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	ok, err := s.hasher.Verify(pass, user.PasswordHash)
	if err != nil {
		log.Printf("[AuthService] Unreadable password hash for user %d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !ok {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return user, nil
}

// GetUserByID returns the user with the given ID.
func (s *AuthService) GetUserByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateFullName changes the user's display name.
func (s *AuthService) UpdateFullName(id uint, fullName string) (*entity.User, error) {
	fullName = strings.TrimSpace(fullName)
	if len(fullName) > 100 {
		return nil, fmt.Errorf("%w: fullname must be at most 100 characters", apperrors.ErrValidation)
	}
	if err := s.userRepo.UpdateFullName(id, fullName); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(id)
}
