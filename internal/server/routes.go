// AngelaMos | 2026
// routes.go

package server

import (
	"net/http"

	"github.com/carterperez-dev/invoicing-backend/internal/invoice"
	"github.com/carterperez-dev/invoicing-backend/internal/taxprofile"
	"github.com/carterperez-dev/invoicing-backend/internal/user"
)

type Middleware = func(http.Handler) http.Handler

// API holds the handlers and guards mounted by Mount. Nil limiters are
// skipped.
type API struct {
	Authenticator Middleware
	GlobalLimiter Middleware
	AuthLimiter   Middleware
	JWKS          http.Handler

	Users       *user.Handler
	TaxProfiles *taxprofile.Handler
	Invoices    *invoice.Handler
}

func (s *Server) Mount(api API) {
	r := s.router

	if api.GlobalLimiter != nil {
		r.Use(api.GlobalLimiter)
	}

	if s.config.HealthHandler != nil {
		s.config.HealthHandler.RegisterRoutes(r)
	}

	if api.JWKS != nil {
		r.Method(http.MethodGet, "/.well-known/jwks.json", api.JWKS)
	}

	api.Users.RegisterRoutes(r, api.Authenticator, api.AuthLimiter)
	api.TaxProfiles.RegisterRoutes(r, api.Authenticator)
	api.Invoices.RegisterRoutes(r, api.Authenticator)
}
