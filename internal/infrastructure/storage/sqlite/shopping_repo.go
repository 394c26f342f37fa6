package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/domain/shopping"
)

var shoppingColumns = ExtractDBColumns[shopping.Entry]()

// ShoppingRepo implements shopping.Repository on SQLite.
type ShoppingRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ shopping.Repository = (*ShoppingRepo)(nil)

// NewShoppingRepo creates a new shopping list repository.
func NewShoppingRepo(db *sql.DB) *ShoppingRepo {
	return &ShoppingRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (r *ShoppingRepo) List(ctx context.Context) ([]shopping.Entry, error) {
	query, args, err := r.sb.
		Select(shoppingColumns...).
		From("shopping_list").
		OrderBy("checked ASC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	entries := []shopping.Entry{}
	if err := sqlscan.Select(ctx, r.db, &entries, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("loading shopping list: %w", err))
	}
	return entries, nil
}

func (r *ShoppingRepo) Create(ctx context.Context, entry *shopping.Entry) (int64, error) {
	query, args, err := r.sb.
		Insert("shopping_list").
		Columns("name", "quantity", "category", "notes").
		Values(entry.Name, entry.Quantity, entry.Category, entry.Notes).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building insert query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("adding shopping item: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.NewDatabase(fmt.Errorf("adding shopping item: %w", err))
	}
	entry.ID = id
	return id, nil
}

func (r *ShoppingRepo) Update(ctx context.Context, entry *shopping.Entry) error {
	query, args, err := r.sb.
		Update("shopping_list").
		Set("checked", entry.Checked).
		Set("name", entry.Name).
		Set("quantity", entry.Quantity).
		Where(sq.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("updating shopping item: %w", err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("Shopping item", entry.ID)
	}
	return nil
}

func (r *ShoppingRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.
		Delete("shopping_list").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("deleting shopping item: %w", err))
	}
	return nil
}

func (r *ShoppingRepo) DeleteChecked(ctx context.Context) error {
	query, args, err := r.sb.
		Delete("shopping_list").
		Where(sq.Eq{"checked": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building clear query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("clearing checked items: %w", err))
	}
	return nil
}

func (r *ShoppingRepo) Names(ctx context.Context) ([]string, error) {
	query, args, err := r.sb.
		Select("name").
		From("shopping_list").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building names query: %w", err)
	}

	names := []string{}
	if err := sqlscan.Select(ctx, r.db, &names, query, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("loading shopping names: %w", err))
	}
	return names, nil
}
