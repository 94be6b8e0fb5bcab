// AngelaMos | 2026
// repository.go

package taxprofile

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
	Create(ctx context.Context, tp *TaxProfile) error
	List(ctx context.Context, f Filter) ([]TaxProfile, error)
	GetOne(ctx context.Context, key Key) (*TaxProfile, error)
	Update(ctx context.Context, key Key, patch Patch) (*TaxProfile, error)
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
	"id", "user_id", "legal_name", "vat_number", "address", "city",
	"zip_code", "country", "created_at", "updated_at",
}

func ownedBy(key Key) sq.And {
	return sq.And{sq.Eq{"id": key.ID}, sq.Eq{"user_id": key.UserID}}
}

func (r *repository) Create(ctx context.Context, tp *TaxProfile) error {
	query := `
		INSERT INTO tax_profiles (id, user_id, legal_name, vat_number, address,
		                          city, zip_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, tp, query,
		tp.ID,
		tp.UserID,
		tp.LegalName,
		tp.VatNumber,
		tp.Address,
		tp.City,
		tp.ZipCode,
		tp.Country,
	)
	if core.IsForeignKeyError(err) {
		return fmt.Errorf("create tax profile: %w", core.ErrNoRecord)
	}
	if err != nil {
		return fmt.Errorf("create tax profile: %w", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]TaxProfile, error) {
	q := r.psql.
		Select(columns...).
		From("tax_profiles").
		Where(f.Where).
		OrderBy("updated_at DESC", "id DESC")
	q = f.Page.Apply(q)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tax profiles query: %w", err)
	}

	profiles := []TaxProfile{}
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("list tax profiles: %w", err)
	}

	return profiles, nil
}

func (r *repository) GetOne(ctx context.Context, key Key) (*TaxProfile, error) {
	query, args, err := r.psql.
		Select(columns...).
		From("tax_profiles").
		Where(ownedBy(key)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get tax profile query: %w", err)
	}

	var tp TaxProfile
	err = r.db.GetContext(ctx, &tp, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tax profile: %w", core.ErrNoRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("get tax profile: %w", err)
	}

	return &tp, nil
}

// Update applies patch only when the row still belongs to key.UserID.
func (r *repository) Update(
	ctx context.Context,
	key Key,
	patch Patch,
) (*TaxProfile, error) {
	q := r.psql.Update("tax_profiles")

	for _, set := range []struct {
		column string
		value  *string
	}{
		{"legal_name", patch.LegalName},
		{"vat_number", patch.VatNumber},
		{"address", patch.Address},
		{"city", patch.City},
		{"zip_code", patch.ZipCode},
		{"country", patch.Country},
	} {
		if set.value != nil {
			q = q.Set(set.column, *set.value)
		}
	}

	query, args, err := q.
		Set("updated_at", sq.Expr("NOW()")).
		Where(ownedBy(key)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update tax profile query: %w", err)
	}

	var tp TaxProfile
	err = r.db.GetContext(ctx, &tp, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update tax profile: %w", core.ErrNoRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("update tax profile: %w", err)
	}

	return &tp, nil
}

func (r *repository) Delete(ctx context.Context, key Key) error {
	query, args, err := r.psql.
		Delete("tax_profiles").
		Where(ownedBy(key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete tax profile query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tax profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tax profile: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete tax profile: %w", core.ErrNoRecord)
	}

	return nil
}
