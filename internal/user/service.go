// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

const (
	MsgSignedUp           = "Signed up"
	MsgLoggedIn           = "Logged in"
	MsgUserDeleted        = "User deleted"
	MsgUserNotFound       = "User not found"
	MsgAlreadyRegistered  = "User already registered"
	MsgInvalidCredentials = "Invalid email or password"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, digest string) bool
}

type TokenIssuer interface {
	CreateAccessToken(userID string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewService(
	repo Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (string, error) {
	_, err := s.repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return "", core.ConflictError(MsgAlreadyRegistered)
	case !errors.Is(err, core.ErrNoRecord):
		return "", err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: digest,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return "", core.ConflictError(MsgAlreadyRegistered)
		}
		return "", err
	}

	return s.issue(user.ID)
}

// Login answers an unknown email and a wrong password identically.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, core.ErrNoRecord) {
			return "", err
		}
		s.hasher.Compare(req.Password, "")
		return "", core.UnauthorizedError(MsgInvalidCredentials)
	}

	if !s.hasher.Compare(req.Password, user.PasswordHash) {
		return "", core.UnauthorizedError(MsgInvalidCredentials)
	}

	return s.issue(user.ID)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, core.NotFoundError(MsgUserNotFound)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNoRecord) {
			return nil, core.NotFoundError(MsgUserNotFound)
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) Update(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, lookupErr := s.repo.GetByEmail(ctx, *req.Email)
		switch {
		case lookupErr == nil && existing.ID != user.ID:
			return nil, core.ConflictError(MsgAlreadyRegistered)
		case lookupErr != nil && !errors.Is(lookupErr, core.ErrNoRecord):
			return nil, lookupErr
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		digest, hashErr := s.hasher.Hash(*req.Password)
		if hashErr != nil {
			return nil, fmt.Errorf("hash password: %w", hashErr)
		}
		user.PasswordHash = digest
	}

	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}

	if req.LastName != nil {
		user.LastName = req.LastName
	}

	if req.BirthDate != nil {
		bd, parseErr := parseBirthDate(*req.BirthDate)
		if parseErr != nil {
			return nil, core.ValidationError("Validation error", core.FieldError{
				Field:   "birthDate",
				Message: "must match format 2006-01-02",
			})
		}
		user.BirthDate = &bd
	}

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, core.ErrNoRecord):
			return nil, core.NotFoundError(MsgUserNotFound)
		case errors.Is(err, core.ErrDuplicateKey):
			return nil, core.ConflictError(MsgAlreadyRegistered)
		}
		return nil, err
	}

	return user, nil
}

// Delete removes the user. Tax profiles and invoices go with it through
// the foreign key cascade.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, core.ErrNoRecord) {
			return core.NotFoundError(MsgUserNotFound)
		}
		return err
	}

	return nil
}

func (s *Service) issue(userID string) (string, error) {
	token, err := s.tokens.CreateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
