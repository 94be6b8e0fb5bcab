// AngelaMos | 2026
// dto.go

package user

import (
	"strings"
	"time"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

const birthDateLayout = "2006-01-02"

type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"     validate:"omitempty,email,max=255"`
	Password  *string `json:"password,omitempty"  validate:"omitempty,min=8,max=128"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=2,max=255"`
	LastName  *string `json:"lastName,omitempty"  validate:"omitempty,min=2,max=255"`
	BirthDate *string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (r *SignupRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r *UpdateUserRequest) Normalize() {
	trimPtr(r.Email)
	trimPtr(r.Password)
	trimPtr(r.FirstName)
	trimPtr(r.LastName)
	trimPtr(r.BirthDate)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

type AuthResponse struct {
	Message string `json:"message"`
	JWT     string `json:"jwt"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	BirthDate *string `json:"birthDate"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// ToUserResponse never carries the password digest.
func ToUserResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: core.FormatTimestamp(u.CreatedAt),
		UpdatedAt: core.FormatTimestamp(u.UpdatedAt),
	}
	if u.BirthDate != nil {
		bd := core.FormatTimestamp(*u.BirthDate)
		resp.BirthDate = &bd
	}
	return resp
}

func parseBirthDate(s string) (time.Time, error) {
	return time.Parse(birthDateLayout, s)
}
