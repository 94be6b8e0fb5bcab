// AngelaMos | 2026
// fake_test.go

package invoice

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
	"github.com/carterperez-dev/invoicing-backend/internal/taxprofile"
)

// fakeTaxProfiles maps tax profile id to owning user id.
type fakeTaxProfiles map[string]string

func (f fakeTaxProfiles) GetOne(_ context.Context, id, userID string) (*taxprofile.TaxProfile, error) {
	owner, ok := f[id]
	if !ok || owner != userID {
		return nil, core.NotFoundError(taxprofile.MsgNotFound)
	}
	return &taxprofile.TaxProfile{ID: id, UserID: owner}, nil
}

// fakeRepository evaluates the sq.Eq predicates of a Filter and its page.
// Range predicates are recorded but not evaluated.
type fakeRepository struct {
	mu         sync.Mutex
	owners     fakeTaxProfiles
	invoices   map[string]*Invoice
	writes     int
	listCalls  int
	lastFilter Filter
}

func newFakeRepository(owners fakeTaxProfiles) *fakeRepository {
	return &fakeRepository{owners: owners, invoices: map[string]*Invoice{}}
}

func (f *fakeRepository) Create(_ context.Context, inv *Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.owners[inv.TaxProfileID]; !ok {
		return fmt.Errorf("create invoice: %w", core.ErrNoRecord)
	}

	now := time.Now().UTC().Add(time.Duration(len(f.invoices)) * time.Millisecond)
	inv.CreatedAt, inv.UpdatedAt = now, now
	stored := *inv
	f.invoices[inv.ID] = &stored
	f.writes++
	return nil
}

func (f *fakeRepository) column(inv *Invoice, name string) any {
	switch name {
	case "tp.user_id":
		return f.owners[inv.TaxProfileID]
	case "i.tax_profile_id":
		return inv.TaxProfileID
	case "i.status":
		return string(inv.Status)
	case "i.currency":
		return string(inv.Currency)
	case "i.amount":
		return inv.Amount
	}
	panic("fake: unknown column " + name)
}

func (f *fakeRepository) matches(inv *Invoice, where sq.And) bool {
	for _, pred := range where {
		eq, ok := pred.(sq.Eq)
		if !ok {
			continue
		}
		for col, want := range eq {
			got := f.column(inv, col)
			if d, ok := want.(decimal.Decimal); ok {
				if !d.Equal(got.(decimal.Decimal)) {
					return false
				}
				continue
			}
			if got != want {
				return false
			}
		}
	}
	return true
}

func (f *fakeRepository) List(_ context.Context, filter Filter) ([]Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	f.lastFilter = filter

	out := []Invoice{}
	for _, inv := range f.invoices {
		if f.matches(inv, filter.Where) {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	start := min(int(filter.Page.Skip), len(out))
	end := min(start+int(filter.Page.Take), len(out))
	return out[start:end], nil
}

func (f *fakeRepository) owned(key Key) (*Invoice, bool) {
	inv, ok := f.invoices[key.ID]
	if !ok || f.owners[inv.TaxProfileID] != key.UserID {
		return nil, false
	}
	return inv, true
}

func (f *fakeRepository) GetOne(_ context.Context, key Key) (*Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inv, ok := f.owned(key)
	if !ok {
		return nil, fmt.Errorf("get invoice: %w", core.ErrNoRecord)
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeRepository) Update(_ context.Context, key Key, patch Patch) (*Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inv, ok := f.owned(key)
	if !ok {
		return nil, fmt.Errorf("update invoice: %w", core.ErrNoRecord)
	}

	if patch.Amount != nil {
		inv.Amount = *patch.Amount
	}
	if patch.Status != nil {
		inv.Status = *patch.Status
	}
	if patch.Currency != nil {
		inv.Currency = *patch.Currency
	}
	inv.UpdatedAt = time.Now().UTC()
	f.writes++

	copied := *inv
	return &copied, nil
}

func (f *fakeRepository) Delete(_ context.Context, key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.owned(key); !ok {
		return fmt.Errorf("delete invoice: %w", core.ErrNoRecord)
	}
	delete(f.invoices, key.ID)
	f.writes++
	return nil
}
