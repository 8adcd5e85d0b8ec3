package entity

import (
	"time"
)

// OAuthAccount links a local user to an identity at an external provider.
// The (provider, provider_user_id) pair is unique so one external identity
// can never be attached to two local accounts.
type OAuthAccount struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	Provider       string    `json:"provider" gorm:"size:50;not null;uniqueIndex:idx_provider_subject"`
	ProviderUserID string    `json:"provider_user_id" gorm:"size:255;not null;uniqueIndex:idx_provider_subject"`
	Email          string    `json:"email" gorm:"size:255"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (OAuthAccount) TableName() string {
	return "user_oauth_accounts"
}
