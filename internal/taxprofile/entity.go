// AngelaMos | 2026
// entity.go

package taxprofile

import (
	"time"
)

type TaxProfile struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	LegalName string    `db:"legal_name"`
	VatNumber string    `db:"vat_number"`
	Address   string    `db:"address"`
	City      string    `db:"city"`
	ZipCode   string    `db:"zip_code"`
	Country   string    `db:"country"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Key identifies a tax profile as seen by one user.
type Key struct {
	ID     string
	UserID string
}

// Patch holds the mutable columns. UserID is immutable.
type Patch struct {
	LegalName *string
	VatNumber *string
	Address   *string
	City      *string
	ZipCode   *string
	Country   *string
}

func (p Patch) IsEmpty() bool {
	return p.LegalName == nil && p.VatNumber == nil && p.Address == nil &&
		p.City == nil && p.ZipCode == nil && p.Country == nil
}
