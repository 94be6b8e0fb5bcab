// AngelaMos | 2026
// fake_test.go

package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

type fakeRepository struct {
	mu     sync.Mutex
	users  map[string]*User
	writes int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*User{}}
}

func (f *fakeRepository) Create(_ context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}

	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	stored := *u
	f.users[u.ID] = &stored
	f.writes++
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNoRecord)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNoRecord)
}

func (f *fakeRepository) Update(_ context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[u.ID]; !ok {
		return fmt.Errorf("update user: %w", core.ErrNoRecord)
	}
	u.UpdatedAt = time.Now().UTC()
	stored := *u
	f.users[u.ID] = &stored
	f.writes++
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNoRecord)
	}
	delete(f.users, id)
	f.writes++
	return nil
}

type fakeHasher struct {
	compares int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Compare(password, digest string) bool {
	h.compares++
	return digest != "" && strings.TrimPrefix(digest, "hashed:") == password
}

type fakeIssuer struct{}

func (fakeIssuer) CreateAccessToken(userID string) (string, error) {
	return "token-for-" + userID, nil
}
