package repository

// Atomic runs user and provider-link operations inside one database
// transaction so account linking either fully succeeds or leaves no trace.
type Atomic interface {
	// Transact calls fn with repositories bound to a single transaction.
	// The transaction commits if fn returns nil and rolls back otherwise.
	Transact(fn func(users UserRepository, links OAuthAccountRepository) error) error
}
