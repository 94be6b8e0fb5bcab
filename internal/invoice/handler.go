// AngelaMos | 2026
// handler.go

package invoice

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
	"github.com/carterperez-dev/invoicing-backend/internal/filter"
	"github.com/carterperez-dev/invoicing-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/invoice", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := filter.NewQueryParser(r.URL.Query())

	opts := ListOptions{
		UserID:       middleware.GetUserID(r.Context()),
		TaxProfileID: q.String("taxProfileId"),
		Amount:       q.Decimal("amount"),
		Status:       (*Status)(q.OneOf("status", Statuses...)),
		Currency:     (*Currency)(q.OneOf("currency", Currencies...)),
		CreatedAt:    q.DateRange("CreatedAt"),
		UpdatedAt:    q.DateRange("UpdatedAt"),
		Skip:         q.Int("skip"),
		Take:         q.Int("take"),
	}
	if err := q.Err(); err != nil {
		core.HandleError(w, r, err)
		return
	}

	invoices, err := h.service.List(r.Context(), opts)
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.OK(w, InvoiceListEnvelope{Invoices: ToInvoiceResponseList(invoices)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.GetOne(
		r.Context(),
		chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.OK(w, InvoiceEnvelope{Invoice: ToInvoiceResponse(inv)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.HandleError(w, r, err)
		return
	}
	req.Normalize()

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.HandleError(w, r, err)
		return
	}

	inv, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.Created(w, InvoiceEnvelope{Invoice: ToInvoiceResponse(inv)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateInvoiceRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.HandleError(w, r, err)
		return
	}

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.HandleError(w, r, err)
		return
	}

	inv, err := h.service.Update(
		r.Context(),
		chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.OK(w, InvoiceEnvelope{Invoice: ToInvoiceResponse(inv)})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.Message(w, MsgDeleted)
}
