package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"forzeit/application/ports"
	"forzeit/domain/core/entities"
	"forzeit/pkg/auth"
	pkgerrors "forzeit/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers map[string]*entities.User

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, ports.ErrNotFound
}

func newJWT(t *testing.T) (*auth.JWTValidator, *auth.JWTGenerator) {
	t.Helper()
	cfg := auth.JWTConfig{SecretKey: "middleware-secret", Issuer: "forzeit-api", ExpiryTime: time.Hour}
	v, err := auth.NewJWTValidator(cfg)
	require.NoError(t, err)
	g, err := auth.NewJWTGenerator(cfg)
	require.NoError(t, err)
	return v, g
}

// captureUser records the user context seen by the next handler
func captureUser(seen **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := auth.GetUserFromContext(r.Context()); err == nil {
			*seen = user
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	validator, generator := newJWT(t)
	users := fakeUsers{"u1": {ID: "u1", Email: "alice@forzeit.dev", Name: "Alice"}}

	known, err := generator.GenerateToken("u1", "alice@forzeit.dev", "Alice")
	require.NoError(t, err)
	unknown, err := generator.GenerateToken("ghost", "", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantUser string
	}{
		{name: "no header"},
		{name: "valid token", header: "Bearer " + known, wantUser: "u1"},
		{name: "lowercase scheme", header: "bearer " + known, wantUser: "u1"},
		{name: "garbage token", header: "Bearer nope"},
		{name: "missing scheme", header: known},
		{name: "unknown subject", header: "Bearer " + unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *auth.UserContext
			handler := Authenticate(validator, users, zap.NewNop())(captureUser(&seen))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			// Never rejects
			assert.Equal(t, http.StatusNoContent, rec.Code)
			if tt.wantUser == "" {
				assert.Nil(t, seen)
				return
			}
			require.NotNil(t, seen)
			assert.Equal(t, tt.wantUser, seen.UserID)
			assert.Equal(t, "Alice", seen.Name)
		})
	}
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func (s *stubLimiter) Limit() int { return 5 }

func TestRateLimit(t *testing.T) {
	errs := pkgerrors.NewErrorHandler(zap.NewNop(), false)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("allowed", func(t *testing.T) {
		limiter := &stubLimiter{allow: true}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		rec := httptest.NewRecorder()

		RateLimit(limiter, errs)(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"10.0.0.7"}, limiter.keys)
	})

	t.Run("limited", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RateLimit(&stubLimiter{}, errs)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "RATE_LIMIT")
		assert.Contains(t, rec.Body.String(), `"code":"IP_RATE_LIMITED"`)
	})

	t.Run("limiter failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RateLimit(&stubLimiter{err: errors.New("boom")}, errs)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	requests []recordedRequest
}

func (f *fakeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	recorder := &fakeRecorder{}
	router := chi.NewRouter()
	router.Use(Metrics(recorder))
	router.Get("/weeks/{weekID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/weeks/w1", nil))

	require.Len(t, recorder.requests, 1)
	assert.Equal(t, recordedRequest{"GET", "/weeks/{weekID}", http.StatusAccepted}, recorder.requests[0])
}
