package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/auth-api/internal/domain/repository"
)

// Atomic implements repository.Atomic on top of GORM transactions.
type Atomic struct {
	db *gorm.DB
}

// NewAtomic creates a transaction runner
func NewAtomic(db *gorm.DB) repository.Atomic {
	return &Atomic{db: db}
}

// Transact runs fn with repositories bound to one transaction.
func (a *Atomic) Transact(fn func(users repository.UserRepository, links repository.OAuthAccountRepository) error) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepo(tx), NewOAuthAccountRepo(tx))
	})
}
