// Package storage is the persistence adapter: a single PostgreSQL table of
// seen/validated Telegram users, reached through database/sql with the pgx
// driver and migrated with goose.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ttradingco/eventbot/internal/storage/migrations"
)

// Pool bounds mirror the original deployment's connection pool (min 1 /
// max 5); callers acquire a connection per statement and database/sql
// returns it as soon as the call finishes, error or not.
const (
	maxOpenConns    = 5
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute
)

// Open connects to PostgreSQL and applies the pool bounds. The connection is
// verified with a ping so a bad DSN fails at startup, not on first use.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate runs the embedded goose migrations (subscribed_users table plus
// its correo/cedula indexes).
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
