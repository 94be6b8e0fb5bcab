// AngelaMos | 2026
// server_test.go

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicing-backend/internal/config"
	"github.com/carterperez-dev/invoicing-backend/internal/core"
	"github.com/carterperez-dev/invoicing-backend/internal/filter"
	"github.com/carterperez-dev/invoicing-backend/internal/health"
	"github.com/carterperez-dev/invoicing-backend/internal/invoice"
	"github.com/carterperez-dev/invoicing-backend/internal/taxprofile"
	"github.com/carterperez-dev/invoicing-backend/internal/user"
)

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		core.JSONError(w, core.UnauthorizedError("Unauthorized"))
	})
}

func newTestServer(t *testing.T, maxBody int64) *Server {
	t.Helper()

	hh := health.NewHandler()
	srv := New(Config{
		ServerConfig: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
			MaxBodyBytes:    maxBody,
		},
		HealthHandler: hh,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	taxProfiles := taxprofile.NewService(nil, filter.DefaultLimits())
	srv.Mount(API{
		Authenticator: denyAll,
		JWKS: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			core.OK(w, map[string]any{"keys": []any{}})
		}),
		Users:       user.NewHandler(user.NewService(nil, nil, nil)),
		TaxProfiles: taxprofile.NewHandler(taxProfiles),
		Invoices:    invoice.NewHandler(invoice.NewService(nil, taxProfiles, filter.DefaultLimits())),
	})

	return srv
}

func request(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(method, path, rdr))
	return rec
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	srv := newTestServer(t, 1<<10)

	rec := request(srv, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "Not Found", body.Message)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, 1<<10)

	rec := request(srv, http.MethodPut, "/healthz", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEntityRoutesRequireAuthentication(t *testing.T) {
	srv := newTestServer(t, 1<<10)

	for _, path := range []string{"/user", "/tax-profile", "/invoice", "/invoice/abc"} {
		rec := request(srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestPublicRoutesAreMounted(t *testing.T) {
	srv := newTestServer(t, 1<<10)

	assert.Equal(t, http.StatusOK, request(srv, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, request(srv, http.MethodGet, "/.well-known/jwks.json", "").Code)

	rec := request(srv, http.MethodPost, "/user/signup", `{"email":"bad"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	srv := newTestServer(t, 16)

	body := `{"email":"someone@example.com","password":"long enough password"}`
	rec := request(srv, http.MethodPost, "/user/signup", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var resp core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Request body too large", resp.Message)
}

func TestShutdownFailsLiveness(t *testing.T) {
	srv := newTestServer(t, 1<<10)

	require.NoError(t, srv.Shutdown(t.Context(), 0))

	rec := request(srv, http.MethodGet, "/livez", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadinessFollowsServerLifecycle(t *testing.T) {
	srv := newTestServer(t, 1<<10)

	rec := request(srv, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"not_ready"}`, rec.Body.String())

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	assert.Eventually(t, func() bool {
		return request(srv, http.MethodGet, "/readyz", "").Code == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Shutdown(t.Context(), 0))
	require.NoError(t, <-done)

	rec = request(srv, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"shutting_down"}`, rec.Body.String())
}
