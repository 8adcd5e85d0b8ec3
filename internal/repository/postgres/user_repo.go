package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

// UserRepo implements repository.UserRepository backed by PostgreSQL.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *gorm.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

// Create persists a new user and fills in its ID.
func (r *UserRepo) Create(user *entity.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already taken", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID finds a user by ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user with ID %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error fetching user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetByUsername finds a user by username
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user with username %s", apperrors.ErrNotFound, username)
		}
		return nil, fmt.Errorf("database error fetching user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail finds a user by email. Emails are not unique, so the oldest
// matching account wins.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("email = ?", email).Order("id asc").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user with email %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("database error fetching user by email %s: %w", email, err)
	}
	return &user, nil
}

// UpdateFullName updates the user's display name
func (r *UserRepo) UpdateFullName(id uint, fullName string) error {
	result := r.db.Model(&entity.User{}).Where("id = ?", id).Update("full_name", fullName)
	if result.Error != nil {
		return fmt.Errorf("failed to update full name for user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user with ID %d", apperrors.ErrNotFound, id)
	}
	return nil
}
