package dto

import (
	"github.com/yourusername/auth-api/internal/domain/entity"
)

// UserView is the public representation of a user returned by the API.
type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"admin"`
}

// NewUserView converts a user entity into its API representation.
func NewUserView(user *entity.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}
}
