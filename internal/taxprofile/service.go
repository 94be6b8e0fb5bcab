// AngelaMos | 2026
// service.go

package taxprofile

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
	"github.com/carterperez-dev/invoicing-backend/internal/filter"
)

const (
	MsgNotFound = "Tax profile does not exist or does not belong to user"
	MsgDeleted  = "Tax profile deleted"

	// MsgUnknownOwner answers a still-valid token whose user was deleted.
	MsgUnknownOwner = "Unauthorized"
)

type Service struct {
	repo   Repository
	limits filter.Limits
}

func NewService(repo Repository, limits filter.Limits) *Service {
	return &Service{repo: repo, limits: limits}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateTaxProfileRequest,
) (*TaxProfile, error) {
	tp := &TaxProfile{
		ID:        uuid.New().String(),
		UserID:    userID,
		LegalName: req.LegalName,
		VatNumber: req.VatNumber,
		Address:   req.Address,
		City:      req.City,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
	}

	if err := s.repo.Create(ctx, tp); err != nil {
		if errors.Is(err, core.ErrNoRecord) {
			return nil, core.UnauthorizedError(MsgUnknownOwner)
		}
		return nil, err
	}

	return tp, nil
}

func (s *Service) List(ctx context.Context, opts ListOptions) ([]TaxProfile, error) {
	f, err := BuildFilter(opts, s.limits)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, f)
}

// GetOne is the ownership checkpoint. A profile owned by someone else is
// reported exactly like a missing one.
func (s *Service) GetOne(ctx context.Context, id, userID string) (*TaxProfile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, core.NotFoundError(MsgNotFound)
	}

	tp, err := s.repo.GetOne(ctx, Key{ID: id, UserID: userID})
	if err != nil {
		return nil, translate(err)
	}

	return tp, nil
}

func (s *Service) Update(
	ctx context.Context,
	id, userID string,
	req UpdateTaxProfileRequest,
) (*TaxProfile, error) {
	current, err := s.GetOne(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	patch := req.Patch()
	if patch.IsEmpty() {
		return current, nil
	}

	tp, err := s.repo.Update(ctx, Key{ID: id, UserID: userID}, patch)
	if err != nil {
		return nil, translate(err)
	}

	return tp, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetOne(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, Key{ID: id, UserID: userID}); err != nil {
		return translate(err)
	}

	return nil
}

func translate(err error) error {
	if errors.Is(err, core.ErrNoRecord) {
		return core.NotFoundError(MsgNotFound)
	}
	return err
}
