package ports

import "context"

// IdentityAdmin deletes accounts at the identity provider.
type IdentityAdmin interface {
	// DeleteUser removes the account with the given subject. An account that
	// is already gone is not an error.
	DeleteUser(ctx context.Context, subject string) error
}
