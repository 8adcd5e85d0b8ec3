package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserHasPassword(t *testing.T) {
	withPassword := User{PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$a2V5"}
	assert.True(t, withPassword.HasPassword())

	oauthOnly := User{PasswordHash: ""}
	assert.False(t, oauthOnly.HasPassword())
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "user_oauth_accounts", OAuthAccount{}.TableName())
	assert.Equal(t, "user_feedback", Feedback{}.TableName())
}
