package repository

import (
	"github.com/yourusername/auth-api/internal/domain/entity"
)

// OAuthAccountRepository defines methods for working with provider links
type OAuthAccountRepository interface {
	// Create persists a new provider link.
	Create(account *entity.OAuthAccount) error

	// GetByProviderUserID finds a link by provider name and the provider's
	// identifier for the user.
	GetByProviderUserID(provider, providerUserID string) (*entity.OAuthAccount, error)
}
