// AngelaMos | 2026
// dto.go

package taxprofile

import (
	"strings"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

type CreateTaxProfileRequest struct {
	LegalName string `json:"legalName" validate:"required,min=2,max=255"`
	VatNumber string `json:"vatNumber" validate:"required,min=2,max=255"`
	Address   string `json:"address"   validate:"required,min=2,max=255"`
	City      string `json:"city"      validate:"required,min=2,max=255"`
	ZipCode   string `json:"zipCode"   validate:"required,min=2,max=255"`
	Country   string `json:"country"   validate:"required,min=2,max=255"`
}

type UpdateTaxProfileRequest struct {
	LegalName *string `json:"legalName,omitempty" validate:"omitempty,min=2,max=255"`
	VatNumber *string `json:"vatNumber,omitempty" validate:"omitempty,min=2,max=255"`
	Address   *string `json:"address,omitempty"   validate:"omitempty,min=2,max=255"`
	City      *string `json:"city,omitempty"      validate:"omitempty,min=2,max=255"`
	ZipCode   *string `json:"zipCode,omitempty"   validate:"omitempty,min=2,max=255"`
	Country   *string `json:"country,omitempty"   validate:"omitempty,min=2,max=255"`
}

func (r *CreateTaxProfileRequest) Normalize() {
	r.LegalName = strings.TrimSpace(r.LegalName)
	r.VatNumber = strings.TrimSpace(r.VatNumber)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.ZipCode = strings.TrimSpace(r.ZipCode)
	r.Country = strings.TrimSpace(r.Country)
}

func (r *UpdateTaxProfileRequest) Normalize() {
	for _, s := range []*string{
		r.LegalName, r.VatNumber, r.Address, r.City, r.ZipCode, r.Country,
	} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
}

func (r UpdateTaxProfileRequest) Patch() Patch {
	return Patch{
		LegalName: r.LegalName,
		VatNumber: r.VatNumber,
		Address:   r.Address,
		City:      r.City,
		ZipCode:   r.ZipCode,
		Country:   r.Country,
	}
}

type TaxProfileResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	LegalName string `json:"legalName"`
	VatNumber string `json:"vatNumber"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type TaxProfileEnvelope struct {
	TaxProfile TaxProfileResponse `json:"taxProfile"`
}

type TaxProfileListEnvelope struct {
	TaxProfiles []TaxProfileResponse `json:"taxProfiles"`
}

func ToTaxProfileResponse(tp *TaxProfile) TaxProfileResponse {
	return TaxProfileResponse{
		ID:        tp.ID,
		UserID:    tp.UserID,
		LegalName: tp.LegalName,
		VatNumber: tp.VatNumber,
		Address:   tp.Address,
		City:      tp.City,
		ZipCode:   tp.ZipCode,
		Country:   tp.Country,
		CreatedAt: core.FormatTimestamp(tp.CreatedAt),
		UpdatedAt: core.FormatTimestamp(tp.UpdatedAt),
	}
}

func ToTaxProfileResponseList(profiles []TaxProfile) []TaxProfileResponse {
	responses := make([]TaxProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, ToTaxProfileResponse(&profiles[i]))
	}
	return responses
}
