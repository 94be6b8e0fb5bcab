// AngelaMos | 2026
// service.go

package invoice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
	"github.com/carterperez-dev/invoicing-backend/internal/filter"
	"github.com/carterperez-dev/invoicing-backend/internal/taxprofile"
)

const (
	MsgNotFound = "Invoice does not exist or does not belong to user"
	MsgDeleted  = "Invoice deleted"
)

// TaxProfileChecker resolves a tax profile for one user, failing with a
// NotFound AppError when it is missing or foreign.
type TaxProfileChecker interface {
	GetOne(ctx context.Context, id, userID string) (*taxprofile.TaxProfile, error)
}

type Service struct {
	repo        Repository
	taxProfiles TaxProfileChecker
	limits      filter.Limits
}

func NewService(
	repo Repository,
	taxProfiles TaxProfileChecker,
	limits filter.Limits,
) *Service {
	return &Service{repo: repo, taxProfiles: taxProfiles, limits: limits}
}

// Create persists an invoice only after the referenced tax profile is
// confirmed to belong to userID.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateInvoiceRequest,
) (*Invoice, error) {
	tp, err := s.taxProfiles.GetOne(ctx, req.TaxProfileID, userID)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		ID:           uuid.New().String(),
		TaxProfileID: tp.ID,
		Amount:       *req.Amount,
		Status:       req.Status,
		Currency:     req.Currency,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		if errors.Is(err, core.ErrNoRecord) {
			return nil, core.NotFoundError(taxprofile.MsgNotFound)
		}
		return nil, err
	}

	return inv, nil
}

func (s *Service) List(ctx context.Context, opts ListOptions) ([]Invoice, error) {
	f, err := BuildFilter(opts, s.limits)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, f)
}

func (s *Service) GetOne(ctx context.Context, id, userID string) (*Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, core.NotFoundError(MsgNotFound)
	}

	inv, err := s.repo.GetOne(ctx, Key{ID: id, UserID: userID})
	if err != nil {
		return nil, translate(err)
	}

	return inv, nil
}

func (s *Service) Update(
	ctx context.Context,
	id, userID string,
	req UpdateInvoiceRequest,
) (*Invoice, error) {
	current, err := s.GetOne(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	patch := req.Patch()
	if patch.IsEmpty() {
		return current, nil
	}

	inv, err := s.repo.Update(ctx, Key{ID: id, UserID: userID}, patch)
	if err != nil {
		return nil, translate(err)
	}

	return inv, nil
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
