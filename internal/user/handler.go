// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
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
	authLimiter func(http.Handler) http.Handler,
) {
	r.Route("/user", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if authLimiter != nil {
				r.Use(authLimiter)
			}
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/", h.GetMe)
			r.Put("/", h.UpdateMe)
			r.Delete("/", h.DeleteMe)
		})
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.HandleError(w, r, err)
		return
	}
	req.Normalize()

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.HandleError(w, r, err)
		return
	}

	token, err := h.service.Signup(r.Context(), req)
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.Created(w, AuthResponse{Message: MsgSignedUp, JWT: token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.HandleError(w, r, err)
		return
	}
	req.Normalize()

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.HandleError(w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.OK(w, AuthResponse{Message: MsgLoggedIn, JWT: token})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetProfile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.OK(w, UserEnvelope{User: ToUserResponse(user)})
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.HandleError(w, r, err)
		return
	}
	req.Normalize()

	if err := core.ValidateStruct(h.validator, req); err != nil {
		core.HandleError(w, r, err)
		return
	}

	user, err := h.service.Update(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.OK(w, UserEnvelope{User: ToUserResponse(user)})
}

func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		core.HandleError(w, r, err)
		return
	}

	core.Message(w, MsgUserDeleted)
}
