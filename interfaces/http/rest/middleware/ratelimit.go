package middleware

import (
	"context"
	"net"
	"net/http"

	pkgerrors "forzeit/pkg/errors"
)

// Limiter decides whether a client may make another request
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Limit() int
}

// ErrorResponder writes error responses
type ErrorResponder interface {
	Handle(w http.ResponseWriter, r *http.Request, err error)
}

// RateLimitCode marks responses rejected by the per-IP limiter
const RateLimitCode = "IP_RATE_LIMITED"

// RateLimit rejects clients that exceed the per-IP request budget.
// It expects chi's RealIP middleware to have normalized RemoteAddr.
func RateLimit(limiter Limiter, errs ErrorResponder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				errs.Handle(w, r, pkgerrors.Wrap(err, "rate limiter failed"))
				return
			}
			if !allowed {
				errs.Handle(w, r, pkgerrors.NewRateLimitError(limiter.Limit(), "minute").WithCode(RateLimitCode))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
