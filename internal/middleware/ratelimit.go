package middleware

import (
	"net"
	"net/http"

	"shopcart-api/internal/ratelimit"
	"shopcart-api/pkg/apierror"
	"shopcart-api/pkg/response"
)

// NewRateLimitMiddleware caps requests per client IP using the given
// limiter. Applied to the authentication-adjacent routes (register,
// login) to slow down credential guessing.
func NewRateLimitMiddleware(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				response.Error(w, apierror.TooManyRequests(
					"Too many attempts. Please try again later.", limiter.Window()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address without the port. RemoteAddr is
// trusted as-is; this service is not expected to sit behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
