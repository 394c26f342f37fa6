package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/domain/stats"
)

// topScannedLimit caps the most-scanned list of the advanced statistics.
const topScannedLimit = 5

// StatsRepo computes inventory aggregates on SQLite. The aggregate queries
// are written out directly; builder composition adds nothing here.
type StatsRepo struct {
	db *sql.DB
}

var _ stats.Repository = (*StatsRepo)(nil)

// NewStatsRepo creates a new statistics repository.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) Basic(ctx context.Context) (*stats.Basic, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	weekFromNow := now.AddDate(0, 0, 7).Format("2006-01-02")
	thirtyDaysAgo := now.AddDate(0, 0, -30).Format("2006-01-02")

	var b stats.Basic

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(price * quantity), 0) FROM products`,
	).Scan(&b.TotalProducts, &b.TotalItems, &b.TotalValue)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("computing totals: %w", err))
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE expiry_date != '' AND expiry_date <= ? AND expiry_date >= ?`,
		weekFromNow, today,
	).Scan(&b.ExpiringSoon)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("counting expiring products: %w", err))
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE expiry_date != '' AND expiry_date < ?`,
		today,
	).Scan(&b.Expired)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("counting expired products: %w", err))
	}

	b.ByLocation = []stats.LocationCount{}
	err = sqlscan.Select(ctx, r.db, &b.ByLocation,
		`SELECT location, COUNT(*) AS products, COALESCE(SUM(quantity), 0) AS items
		 FROM products GROUP BY location ORDER BY location`,
	)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("grouping by location: %w", err))
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(price * quantity), 0) FROM products WHERE created_at >= ?`,
		thirtyDaysAgo,
	).Scan(&b.RecentAdditionsCount, &b.RecentAdditionsValue)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("counting recent additions: %w", err))
	}

	return &b, nil
}

func (r *StatsRepo) Advanced(ctx context.Context) (*stats.Advanced, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")

	var a stats.Advanced

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(price * quantity), 0)
		 FROM products WHERE expiry_date != '' AND expiry_date < ?`,
		today,
	).Scan(&a.Waste.Count, &a.Waste.Value)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("computing waste: %w", err))
	}

	a.ByCategory = []stats.CategoryCount{}
	err = sqlscan.Select(ctx, r.db, &a.ByCategory,
		`SELECT category, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS items
		 FROM products WHERE category != '' GROUP BY category ORDER BY count DESC`,
	)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("grouping by category: %w", err))
	}

	a.TopScanned = []stats.ScannedCount{}
	err = sqlscan.Select(ctx, r.db, &a.TopScanned,
		`SELECT name, scan_count, last_scanned FROM barcode_history
		 ORDER BY scan_count DESC LIMIT ?`,
		topScannedLimit,
	)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("loading top scanned: %w", err))
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE created_at >= ?`,
		weekAgo,
	).Scan(&a.WeeklyAdditions)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("counting weekly additions: %w", err))
	}

	a.AvgByCategory = []stats.CategoryAvg{}
	err = sqlscan.Select(ctx, r.db, &a.AvgByCategory,
		`SELECT category, ROUND(AVG(price), 2) AS avg_price
		 FROM products WHERE category != '' AND price > 0
		 GROUP BY category ORDER BY category`,
	)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("averaging prices: %w", err))
	}

	return &a, nil
}
