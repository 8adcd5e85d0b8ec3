package repository

import (
	"github.com/yourusername/auth-api/internal/domain/entity"
)

// UserRepository defines methods for working with users
type UserRepository interface {
	// Create persists a new user and fills in its ID.
	Create(user *entity.User) error

	// GetByID finds a user by ID
	GetByID(id uint) (*entity.User, error)

	// GetByUsername finds a user by username
	GetByUsername(username string) (*entity.User, error)

	// GetByEmail finds a user by email. When several users share the email,
	// the oldest one is returned.
	GetByEmail(email string) (*entity.User, error)

	// UpdateFullName updates the user's display name
	UpdateFullName(id uint, fullName string) error
}
