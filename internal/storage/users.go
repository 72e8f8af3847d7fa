package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SeenUser is the profile slice of an inbound Telegram user, recorded on
// every update ("last seen" touch).
type SeenUser struct {
	UserID    int64
	FirstName string
	LastName  string
	Username  string
	Language  string
}

// Users persists the subscribed_users table, the only durable state in the
// system and the source of the broadcast recipient list.
type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// UpsertSeen inserts or refreshes the user's Telegram profile and bumps
// last_seen. It never touches the validation columns.
func (r *Users) UpsertSeen(ctx context.Context, u SeenUser) error {
	query :=
		`INSERT INTO subscribed_users (user_id, first_name, last_name, username, language, first_seen, last_seen)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 ON CONFLICT (user_id) DO UPDATE
		    SET first_name = EXCLUDED.first_name,
		        last_name  = EXCLUDED.last_name,
		        username   = EXCLUDED.username,
		        language   = EXCLUDED.language,
		        last_seen  = NOW()`

	if _, err := r.db.ExecContext(ctx, query,
		u.UserID, nullable(u.FirstName), nullable(u.LastName), nullable(u.Username), nullable(u.Language)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RecordValidation stores a successful credential match. COALESCE keeps a
// previously learned cedula or correo when the new validation resolved only
// one identifier shape.
func (r *Users) RecordValidation(ctx context.Context, userID int64, nombre, cedula, correo, credentialUsed string) error {
	query :=
		`INSERT INTO subscribed_users (user_id, nombre, cedula, correo, credential_used, last_seen)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		    SET nombre = EXCLUDED.nombre,
		        cedula = COALESCE(EXCLUDED.cedula, subscribed_users.cedula),
		        correo = COALESCE(EXCLUDED.correo, subscribed_users.correo),
		        credential_used = EXCLUDED.credential_used,
		        last_seen = NOW()`

	if _, err := r.db.ExecContext(ctx, query,
		userID, nombre, nullable(cedula), nullable(correo), credentialUsed); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// BroadcastRecipients returns the IDs of every user that has ever validated
// (non-null nombre), regardless of current session state.
func (r *Users) BroadcastRecipients(ctx context.Context) ([]int64, error) {
	query := `SELECT user_id FROM subscribed_users WHERE nombre IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

// nullable maps empty strings to SQL NULL so COALESCE upserts behave.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
