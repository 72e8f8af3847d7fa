// Package session holds per-user authentication state for the lifetime of
// the process (or, with the Redis backend, across instances). There is no
// expiry: once validated, a user stays validated until restart.
package session

import "context"

// Profile is the authentication state kept per Telegram user.
type Profile struct {
	Name          string
	Authenticated bool
}

// Store abstracts the session map so handlers do not depend on where the
// state lives. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the profile for userID and whether one exists.
	Get(ctx context.Context, userID int64) (Profile, bool, error)

	// Set creates or overwrites the profile for userID.
	Set(ctx context.Context, userID int64, p Profile) error

	// Clear removes the profile for userID, if any.
	Clear(ctx context.Context, userID int64) error
}
