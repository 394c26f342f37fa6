package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
)

var productColumns = ExtractDBColumns[product.Item]()

// productEditable are the columns written on create and update. ID and
// creation timestamp are owned by the database, scan bookkeeping by the
// barcode history flow.
var productEditable = func() map[string]bool {
	skip := map[string]bool{"id": true, "created_at": true, "scan_count": true, "last_scanned": true}
	cols := make(map[string]bool, len(productColumns))
	for _, c := range productColumns {
		if !skip[c] {
			cols[c] = true
		}
	}
	return cols
}()

// ProductRepo implements product.Repository on SQLite.
type ProductRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (r *ProductRepo) List(ctx context.Context) ([]product.Item, error) {
	query, args, err := r.sb.
		Select(productColumns...).
		From("products").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	items := []product.Item{}
	if err := sqlscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("loading products: %w", err))
	}
	return items, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*product.Item, error) {
	query, args, err := r.sb.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get query: %w", err)
	}

	var item product.Item
	if err := sqlscan.Get(ctx, r.db, &item, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, apperror.NewNotFound("Product", id)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("loading product: %w", err))
	}
	return &item, nil
}

func (r *ProductRepo) Create(ctx context.Context, item *product.Item) (int64, error) {
	values := editableValues(item)

	query, args, err := r.sb.
		Insert("products").
		SetMap(values).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building insert query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("creating product: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("creating product: %w", err))
	}
	return id, nil
}

func (r *ProductRepo) Update(ctx context.Context, item *product.Item) error {
	values := editableValues(item)

	query, args, err := r.sb.
		Update("products").
		SetMap(values).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("updating product: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("Product", item.ID)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.
		Delete("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("deleting product: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("Product", id)
	}
	return nil
}

func (r *ProductRepo) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return WithinTx(ctx, r.db, "products.delete_many", func(ctx context.Context, tx *sql.Tx) error {
		query, args, err := r.sb.
			Delete("products").
			Where(sq.Eq{"id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("building batch delete query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperror.NewDatabase(fmt.Errorf("deleting products: %w", err))
		}
		return nil
	})
}

func (r *ProductRepo) UpdateLocationMany(ctx context.Context, ids []int64, location string) error {
	if len(ids) == 0 {
		return nil
	}
	return WithinTx(ctx, r.db, "products.update_location", func(ctx context.Context, tx *sql.Tx) error {
		query, args, err := r.sb.
			Update("products").
			Set("location", location).
			Where(sq.Eq{"id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("building batch update query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperror.NewDatabase(fmt.Errorf("updating product locations: %w", err))
		}
		return nil
	})
}

func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) ([]product.Item, error) {
	query, args, err := r.sb.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"ean": barcode}).
		Where(sq.NotEq{"ean": ""}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building barcode query: %w", err)
	}

	items := []product.Item{}
	if err := sqlscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("searching by barcode: %w", err))
	}
	return items, nil
}

func (r *ProductRepo) FindByName(ctx context.Context, name string, limit int) ([]product.Item, error) {
	query, args, err := r.sb.
		Select(productColumns...).
		From("products").
		Where(sq.Expr("LOWER(name) = LOWER(?)", name)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building name query: %w", err)
	}

	items := []product.Item{}
	if err := sqlscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("searching by name: %w", err))
	}
	return items, nil
}

func editableValues(item *product.Item) map[string]any {
	all := StructToMap(item)
	values := make(map[string]any, len(productEditable))
	for col := range productEditable {
		values[col] = all[col]
	}
	return values
}
