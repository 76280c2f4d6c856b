// Package store implements core.Store on PostgreSQL using pgx.
//
// Service records of every kind share one table keyed by (kind, serial).
// The typed record is stored as JSONB next to the columns used for
// filtering: kind, record date, client and intervention category. Reads
// join the current client row, so an export always shows the client as it
// is now rather than as it was when the record was imported.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Store is the PostgreSQL core.Store.
type Store struct {
	db DBTX
}

var _ core.Store = (*Store)(nil)

// New returns a Store that runs its queries on db.
func New(db DBTX) *Store {
	return &Store{db: db}
}
