// Package txn runs units of work under a single transaction boundary.
package txn

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matchpoint-labs/wtadb/internal/fault"
)

// Run executes fn inside one transaction. The transaction commits only if fn
// returns nil; any error rolls everything back and is surfaced as a single
// classified transaction failure.
func Run(ctx context.Context, db *sql.DB, op string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fault.New(fault.KindTransaction, op, fmt.Errorf("failed to begin transaction: %w", err))
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Error("Rollback failed", "op", op, "error", rbErr)
		}
		if fault.KindOf(err) == fault.KindValidation {
			return err
		}
		return fault.New(fault.KindTransaction, op, err)
	}

	if err := tx.Commit(); err != nil {
		return fault.New(fault.KindTransaction, op, fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}
