// Package auth gates access: a user is authenticated once a credential they
// typed matches the roster. The session store is the in-memory cache of that
// fact; the users table is the durable trace used for broadcasts.
package auth

import (
	"context"
	"fmt"

	"github.com/ttradingco/eventbot/internal/roster"
	"github.com/ttradingco/eventbot/internal/session"
)

// Validations persists successful credential matches; satisfied by
// storage.Users.
type Validations interface {
	RecordValidation(ctx context.Context, userID int64, nombre, cedula, correo, credentialUsed string) error
}

// Service implements the validate / is-authenticated contract.
type Service struct {
	directory   *roster.Directory
	sessions    session.Store
	validations Validations
}

func NewService(directory *roster.Directory, sessions session.Store, validations Validations) *Service {
	return &Service{directory: directory, sessions: sessions, validations: validations}
}

// IsAuthenticated reports whether userID has validated during this process
// lifetime (or store lifetime, with an external session backend). Unknown
// users are unauthenticated.
func (s *Service) IsAuthenticated(ctx context.Context, userID int64) bool {
	p, ok, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return false
	}
	return ok && p.Authenticated
}

// Validate matches rawInput against the roster. On a hit it overwrites the
// session profile and upserts the persisted record with whichever identifier
// shapes the directory resolved. Re-validating an already-authenticated user
// is harmless: the profile is rewritten with the same name and the upsert
// coalesces previously learned identifiers. A miss returns
// common.ErrNotFound unwrapped for errors.Is matching.
func (s *Service) Validate(ctx context.Context, userID int64, rawInput string) (roster.Entry, error) {
	credential := roster.Normalize(rawInput)

	entry, err := s.directory.Lookup(credential)
	if err != nil {
		return roster.Entry{}, err
	}

	if err := s.sessions.Set(ctx, userID, session.Profile{Name: entry.Name, Authenticated: true}); err != nil {
		return roster.Entry{}, fmt.Errorf("session write: %w", err)
	}

	if err := s.validations.RecordValidation(ctx, userID, entry.Name, entry.Cedula, entry.Correo, credential); err != nil {
		return roster.Entry{}, fmt.Errorf("validation upsert: %w", err)
	}

	return entry, nil
}

// Name returns the display name cached for an authenticated user.
func (s *Service) Name(ctx context.Context, userID int64) string {
	p, _, _ := s.sessions.Get(ctx, userID)
	return p.Name
}
