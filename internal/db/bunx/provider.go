// Package bunx opens bun database handles for the directory backend,
// selecting the dialect from the DSN.
package bunx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite" // SQLite driver
)

// NewDB opens a database for the given DSN. DSNs starting with
// postgres:// or postgresql:// use the pgdriver connector; anything else
// (file paths, file: URIs, :memory:) is treated as SQLite.
func NewDB(dsn string) (*bun.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return newPostgres(dsn)
	}
	return newSQLite(dsn)
}

func newPostgres(dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(10)
	sqldb.SetMaxIdleConns(10)

	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(context.Background()); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func newSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single writer; SQLite serializes writes anyway.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Close closes the handle, tolerating nil.
func Close(db *bun.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
