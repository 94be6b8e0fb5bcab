// AngelaMos | 2026
// dto.go

package invoice

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

type CreateInvoiceRequest struct {
	TaxProfileID string           `json:"taxProfileId" validate:"required"`
	Amount       *decimal.Decimal `json:"amount"       validate:"required,gte=0,lte=9999999999.99"`
	Status       Status           `json:"status"       validate:"required,oneof=PENDING PAID CANCELLED"`
	Currency     Currency         `json:"currency"     validate:"required,oneof=EUR USD GBP"`
}

type UpdateInvoiceRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"   validate:"omitempty,gte=0,lte=9999999999.99"`
	Status   *Status          `json:"status,omitempty"   validate:"omitempty,oneof=PENDING PAID CANCELLED"`
	Currency *Currency        `json:"currency,omitempty" validate:"omitempty,oneof=EUR USD GBP"`
}

func (r *CreateInvoiceRequest) Normalize() {
	r.TaxProfileID = strings.TrimSpace(r.TaxProfileID)
}

func (r UpdateInvoiceRequest) Patch() Patch {
	return Patch{
		Amount:   r.Amount,
		Status:   r.Status,
		Currency: r.Currency,
	}
}

type InvoiceResponse struct {
	ID           string   `json:"id"`
	TaxProfileID string   `json:"taxProfileId"`
	Amount       float64  `json:"amount"`
	Status       Status   `json:"status"`
	Currency     Currency `json:"currency"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

type InvoiceEnvelope struct {
	Invoice InvoiceResponse `json:"invoice"`
}

type InvoiceListEnvelope struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

func ToInvoiceResponse(inv *Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:           inv.ID,
		TaxProfileID: inv.TaxProfileID,
		Amount:       inv.Amount.InexactFloat64(),
		Status:       inv.Status,
		Currency:     inv.Currency,
		CreatedAt:    core.FormatTimestamp(inv.CreatedAt),
		UpdatedAt:    core.FormatTimestamp(inv.UpdatedAt),
	}
}

func ToInvoiceResponseList(invoices []Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses
}
