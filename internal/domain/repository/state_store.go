package repository

import (
	"context"
)

// OAuthStateStore issues and redeems short-lived OAuth state tokens used to
// protect the authorization flow against CSRF.
type OAuthStateStore interface {
	// Create generates a new random state token and remembers it until it
	// expires or is consumed.
	Create(ctx context.Context) (string, error)

	// Consume atomically removes the state if present. It returns true only
	// for a state that existed and had not expired, so each state can be
	// redeemed at most once.
	Consume(ctx context.Context, state string) (bool, error)
}
