// AngelaMos | 2026
// repository.go

package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	List(ctx context.Context, f Filter) ([]Invoice, error)
	GetOne(ctx context.Context, key Key) (*Invoice, error)
	Update(ctx context.Context, key Key, patch Patch) (*Invoice, error)
	Delete(ctx context.Context, key Key) error
}

type repository struct {
	db   core.DBTX
	psql sq.StatementBuilderType
}

func NewRepository(db core.DBTX) Repository {
	return &repository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var columns = []string{
	"id", "tax_profile_id", "amount", "status", "currency",
	"created_at", "updated_at",
}

func qualified(alias string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// ownedBy scopes single-row writes through the tax profile relation.
func ownedBy(key Key) sq.And {
	return sq.And{
		sq.Eq{"id": key.ID},
		sq.Expr("tax_profile_id IN (SELECT id FROM tax_profiles WHERE user_id = ?)", key.UserID),
	}
}

func (r *repository) joined() sq.SelectBuilder {
	return r.psql.
		Select(qualified("i")...).
		From("invoices i").
		Join("tax_profiles tp ON tp.id = i.tax_profile_id")
}

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	query := `
		INSERT INTO invoices (id, tax_profile_id, amount, status, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING amount, created_at, updated_at`

	err := r.db.GetContext(ctx, inv, query,
		inv.ID,
		inv.TaxProfileID,
		inv.Amount,
		string(inv.Status),
		string(inv.Currency),
	)
	if core.IsForeignKeyError(err) {
		return fmt.Errorf("create invoice: %w", core.ErrNoRecord)
	}
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]Invoice, error) {
	q := r.joined().
		Where(f.Where).
		OrderBy("i.created_at DESC", "i.id DESC")
	q = f.Page.Apply(q)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list invoices query: %w", err)
	}

	invoices := []Invoice{}
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	return invoices, nil
}

func (r *repository) GetOne(ctx context.Context, key Key) (*Invoice, error) {
	query, args, err := r.joined().
		Where(sq.And{sq.Eq{"i.id": key.ID}, sq.Eq{"tp.user_id": key.UserID}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get invoice query: %w", err)
	}

	var inv Invoice
	err = r.db.GetContext(ctx, &inv, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get invoice: %w", core.ErrNoRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return &inv, nil
}

func (r *repository) Update(
	ctx context.Context,
	key Key,
	patch Patch,
) (*Invoice, error) {
	q := r.psql.Update("invoices")

	if patch.Amount != nil {
		q = q.Set("amount", *patch.Amount)
	}
	if patch.Status != nil {
		q = q.Set("status", string(*patch.Status))
	}
	if patch.Currency != nil {
		q = q.Set("currency", string(*patch.Currency))
	}

	query, args, err := q.
		Set("updated_at", sq.Expr("NOW()")).
		Where(ownedBy(key)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update invoice query: %w", err)
	}

	var inv Invoice
	err = r.db.GetContext(ctx, &inv, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update invoice: %w", core.ErrNoRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	return &inv, nil
}

func (r *repository) Delete(ctx context.Context, key Key) error {
	query, args, err := r.psql.
		Delete("invoices").
		Where(ownedBy(key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete invoice query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete invoice: %w", core.ErrNoRecord)
	}

	return nil
}
