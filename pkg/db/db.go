package db

import (
	"context"

	"github.com/go-pg/pg/v10"
)

// DB wraps a go-pg connection pool.
type DB struct {
	*pg.DB
}

// New returns DB for the given pg connection.
func New(db *pg.DB) DB {
	return DB{DB: db}
}

// Ping checks that the database connection is alive.
func (db DB) Ping(ctx context.Context) error {
	_, err := db.ExecContext(ctx, "SELECT 1")
	return err
}

// Version returns the PostgreSQL server version.
func (db DB) Version(ctx context.Context) (string, error) {
	var v string
	_, err := db.QueryOneContext(ctx, pg.Scan(&v), "SELECT version()")
	return v, err
}

func (db DB) runInTransaction(ctx context.Context, fn func(*pg.Tx) error) error {
	return db.RunInTransaction(ctx, fn)
}
