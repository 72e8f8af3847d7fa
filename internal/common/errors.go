// Package common defines shared sentinel errors used across the bot's
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository and directory lookup misses.
	ErrNotFound = errors.New("not found")

	// Authorization failures (non-admin invoking admin actions).
	ErrForbidden = errors.New("forbidden")

	// Generic internal failures.
	ErrInternal = errors.New("internal error")
)
