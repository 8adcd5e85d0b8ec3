package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

// OAuthAccountRepo implements repository.OAuthAccountRepository backed by PostgreSQL.
type OAuthAccountRepo struct {
	db *gorm.DB
}

// NewOAuthAccountRepo creates a new provider link repository
func NewOAuthAccountRepo(db *gorm.DB) repository.OAuthAccountRepository {
	return &OAuthAccountRepo{db: db}
}

// Create persists a new provider link.
func (r *OAuthAccountRepo) Create(account *entity.OAuthAccount) error {
	if err := r.db.Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: provider identity already linked", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create provider link: %w", err)
	}
	return nil
}

// GetByProviderUserID finds a link by provider name and subject.
func (r *OAuthAccountRepo) GetByProviderUserID(provider, providerUserID string) (*entity.OAuthAccount, error) {
	var account entity.OAuthAccount
	err := r.db.Where("provider = ? AND provider_user_id = ?", provider, providerUserID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s identity %s", apperrors.ErrNotFound, provider, providerUserID)
		}
		return nil, fmt.Errorf("database error fetching %s identity %s: %w", provider, providerUserID, err)
	}
	return &account, nil
}
