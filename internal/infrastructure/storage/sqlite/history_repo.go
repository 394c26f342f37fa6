package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/domain/history"
)

var historyColumns = ExtractDBColumns[history.Entry]()

// HistoryRepo implements history.Repository on SQLite.
type HistoryRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ history.Repository = (*HistoryRepo)(nil)

// NewHistoryRepo creates a new barcode history repository.
func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// Upsert refreshes the entry for the barcode, bumping its scan count. The
// ean column carries a unique index, so insert-or-update is atomic.
func (r *HistoryRepo) Upsert(ctx context.Context, entry history.Entry) error {
	now := time.Now().UTC().Format("2006-01-02 15:04:05")

	query, args, err := r.sb.
		Insert("barcode_history").
		Columns("ean", "name", "category", "weight_volume", "tags", "is_vegetarian", "is_vegan", "scan_count", "last_scanned").
		Values(entry.Barcode, entry.Name, entry.Category, entry.WeightVolume, entry.Tags, entry.IsVegetarian, entry.IsVegan, 1, now).
		Suffix(`ON CONFLICT(ean) DO UPDATE SET
			scan_count = scan_count + 1,
			last_scanned = excluded.last_scanned,
			name = excluded.name,
			category = excluded.category,
			weight_volume = excluded.weight_volume,
			tags = excluded.tags,
			is_vegetarian = excluded.is_vegetarian,
			is_vegan = excluded.is_vegan`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("upserting barcode history: %w", err))
	}
	return nil
}

func (r *HistoryRepo) List(ctx context.Context, limit int) ([]history.Entry, error) {
	query, args, err := r.sb.
		Select(historyColumns...).
		From("barcode_history").
		OrderBy("last_scanned DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	entries := []history.Entry{}
	if err := sqlscan.Select(ctx, r.db, &entries, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("loading barcode history: %w", err))
	}
	return entries, nil
}
