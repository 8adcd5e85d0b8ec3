package entity

import (
	"time"
)

// User represents an account in the system. A user created through an
// OAuth provider has no password hash until one is set explicitly.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:255;index"`
	FullName     string    `json:"fullname" gorm:"size:100"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	IsAdmin      bool      `json:"admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the user can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
