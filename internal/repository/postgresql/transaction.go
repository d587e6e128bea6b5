package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type txKey struct{}

// WithSnapshot runs fn against a read-only snapshot of the database.
// Repositories called with the returned context read through the same
// transaction. The transaction is always rolled back; nothing is written.
func WithSnapshot(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	return fn(context.WithValue(ctx, txKey{}, tx))
}

// GetQuerier returns the snapshot transaction from ctx, or the pool.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}
