// AngelaMos | 2026
// filter.go

package invoice

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
	"github.com/carterperez-dev/invoicing-backend/internal/filter"
)

// ListOptions are the caller-supplied filters. UserID comes from the
// authenticated principal only.
type ListOptions struct {
	UserID       string
	TaxProfileID *string
	Amount       *decimal.Decimal
	Status       *Status
	Currency     *Currency
	CreatedAt    filter.DateRange
	UpdatedAt    filter.DateRange
	Skip         *int
	Take         *int
}

type Filter struct {
	Where sq.And
	Page  filter.Page
}

// BuildFilter expects list queries to alias invoices as i and their
// tax profile as tp.
func BuildFilter(opts ListOptions, limits filter.Limits) (Filter, error) {
	if opts.TaxProfileID != nil {
		if _, err := uuid.Parse(*opts.TaxProfileID); err != nil {
			return Filter{}, core.ValidationError("Validation error", core.FieldError{
				Field:   "taxProfileId",
				Message: "must be a valid UUID",
			})
		}
	}

	page, err := limits.Page(opts.Skip, opts.Take)
	if err != nil {
		return Filter{}, err
	}

	b := filter.Owned("tp.user_id", opts.UserID)
	b = filter.Equal(b, "i.tax_profile_id", opts.TaxProfileID)
	b = filter.Equal(b, "i.amount", opts.Amount)
	b = filter.Equal(b, "i.status", (*string)(opts.Status))
	b = filter.Equal(b, "i.currency", (*string)(opts.Currency))

	where, err := b.
		Range("i.created_at", "createdAt", opts.CreatedAt).
		Range("i.updated_at", "updatedAt", opts.UpdatedAt).
		Build()
	if err != nil {
		return Filter{}, err
	}

	return Filter{Where: where, Page: page}, nil
}
