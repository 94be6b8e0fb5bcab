// AngelaMos | 2026
// filter.go

package taxprofile

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/carterperez-dev/invoicing-backend/internal/filter"
)

// ListOptions are the caller-supplied filters. UserID comes from the
// authenticated principal only.
type ListOptions struct {
	UserID    string
	LegalName *string
	VatNumber *string
	Address   *string
	City      *string
	Country   *string
	ZipCode   *string
	CreatedAt filter.DateRange
	UpdatedAt filter.DateRange
	Skip      *int
	Take      *int
}

type Filter struct {
	Where sq.And
	Page  filter.Page
}

func BuildFilter(opts ListOptions, limits filter.Limits) (Filter, error) {
	page, err := limits.Page(opts.Skip, opts.Take)
	if err != nil {
		return Filter{}, err
	}

	where, err := filter.Owned("user_id", opts.UserID).
		Contains("legal_name", opts.LegalName).
		Contains("vat_number", opts.VatNumber).
		Contains("address", opts.Address).
		Contains("city", opts.City).
		Contains("country", opts.Country).
		Contains("zip_code", opts.ZipCode).
		Range("created_at", "createdAt", opts.CreatedAt).
		Range("updated_at", "updatedAt", opts.UpdatedAt).
		Build()
	if err != nil {
		return Filter{}, err
	}

	return Filter{Where: where, Page: page}, nil
}
