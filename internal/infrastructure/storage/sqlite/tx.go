package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("heiminventar/storage")

// WithinTx executes fn inside a transaction, committing on success and
// rolling back on error or panic. The surrounding span records the outcome.
func WithinTx(ctx context.Context, db *sql.DB, name string, fn func(ctx context.Context, tx *sql.Tx) error) error {
	ctx, span := tracer.Start(ctx, "tx."+name)
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "sqlite"))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		span.SetStatus(codes.Error, "begin failed")
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		tx.Rollback()
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := tx.Commit(); err != nil {
		span.SetStatus(codes.Error, "commit failed")
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
