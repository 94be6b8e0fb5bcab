// AngelaMos | 2026
// fake_test.go

package taxprofile

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

// fakeRepository honours the ownership predicate and pagination of a
// Filter. Other predicates are recorded but not evaluated.
type fakeRepository struct {
	mu         sync.Mutex
	profiles   map[string]*TaxProfile
	writes     int
	listCalls  int
	lastFilter Filter

	// updateErr simulates a row vanishing between checkpoint and write.
	updateErr error
	// createErr simulates the owning user vanishing before the insert.
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{profiles: map[string]*TaxProfile{}}
}

func (f *fakeRepository) Create(_ context.Context, tp *TaxProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	now := time.Now().UTC().Add(time.Duration(len(f.profiles)) * time.Millisecond)
	tp.CreatedAt, tp.UpdatedAt = now, now
	stored := *tp
	f.profiles[tp.ID] = &stored
	f.writes++
	return nil
}

func (f *fakeRepository) List(_ context.Context, filter Filter) ([]TaxProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	f.lastFilter = filter

	owner := filter.Where[0].(sq.Eq)["user_id"]

	out := []TaxProfile{}
	for _, tp := range f.profiles {
		if tp.UserID == owner {
			out = append(out, *tp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })

	start := min(int(filter.Page.Skip), len(out))
	end := min(start+int(filter.Page.Take), len(out))
	return out[start:end], nil
}

func (f *fakeRepository) GetOne(_ context.Context, key Key) (*TaxProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tp, ok := f.profiles[key.ID]
	if !ok || tp.UserID != key.UserID {
		return nil, fmt.Errorf("get tax profile: %w", core.ErrNoRecord)
	}
	copied := *tp
	return &copied, nil
}

func (f *fakeRepository) Update(_ context.Context, key Key, patch Patch) (*TaxProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return nil, f.updateErr
	}

	tp, ok := f.profiles[key.ID]
	if !ok || tp.UserID != key.UserID {
		return nil, fmt.Errorf("update tax profile: %w", core.ErrNoRecord)
	}

	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&tp.LegalName, patch.LegalName)
	apply(&tp.VatNumber, patch.VatNumber)
	apply(&tp.Address, patch.Address)
	apply(&tp.City, patch.City)
	apply(&tp.ZipCode, patch.ZipCode)
	apply(&tp.Country, patch.Country)
	tp.UpdatedAt = time.Now().UTC()
	f.writes++

	copied := *tp
	return &copied, nil
}

func (f *fakeRepository) Delete(_ context.Context, key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tp, ok := f.profiles[key.ID]
	if !ok || tp.UserID != key.UserID {
		return fmt.Errorf("delete tax profile: %w", core.ErrNoRecord)
	}
	delete(f.profiles, key.ID)
	f.writes++
	return nil
}
