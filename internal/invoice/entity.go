// AngelaMos | 2026
// entity.go

package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

var (
	Statuses   = []string{string(StatusPending), string(StatusPaid), string(StatusCancelled)}
	Currencies = []string{string(CurrencyEUR), string(CurrencyUSD), string(CurrencyGBP)}
)

type Invoice struct {
	ID           string          `db:"id"`
	TaxProfileID string          `db:"tax_profile_id"`
	Amount       decimal.Decimal `db:"amount"`
	Status       Status          `db:"status"`
	Currency     Currency        `db:"currency"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// Key identifies an invoice as seen by one user. Ownership is resolved
// through the invoice's tax profile.
type Key struct {
	ID     string
	UserID string
}

// Patch holds the mutable columns. TaxProfileID is immutable.
type Patch struct {
	Amount   *decimal.Decimal
	Status   *Status
	Currency *Currency
}

func (p Patch) IsEmpty() bool {
	return p.Amount == nil && p.Status == nil && p.Currency == nil
}
