package middleware

import (
	"context"
	"net/http"
	"strings"

	"shopcart-api/internal/model"
	"shopcart-api/internal/service"
	"shopcart-api/pkg/apierror"
	"shopcart-api/pkg/response"
)

// UserKey is the context key for the authenticated user.
const UserKey contextKey = "user"

// AuthConfig holds the dependencies for the auth middleware.
type AuthConfig struct {
	Auth     *service.AuthService
	Sessions *service.SessionService
}

// NewAuthMiddleware creates an authentication middleware with injected
// dependencies. Requests may carry either a bearer session token minted
// at login or HTTP Basic credentials; the resolved user lands in the
// request context.
func NewAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Bearer session token first.
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") && cfg.Sessions != nil {
				token := strings.TrimPrefix(auth, "Bearer ")

				session, err := cfg.Sessions.Validate(r.Context(), token)
				if err != nil {
					response.Error(w, apierror.Unauthorized("Invalid or expired session token"))
					return
				}

				user := &model.User{Username: session.Username, Role: session.Role}
				next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
				return
			}

			// Fall back to HTTP Basic.
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="shopcart"`)
				response.Error(w, apierror.Unauthorized("Authentication required. Use Basic credentials or a Bearer session token."))
				return
			}

			user, err := cfg.Auth.Authenticate(r.Context(), username, password)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="shopcart"`)
				response.Error(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// RequireAdmin gates a route group to users holding the admin role.
// Must run after the auth middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			response.Error(w, apierror.Unauthorized(""))
			return
		}
		if !user.IsAdmin() {
			response.Error(w, apierror.Forbidden("You do not have permission to perform this action"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withUser stores the authenticated user in the context.
func withUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUserFromContext retrieves the authenticated user from the request
// context, or nil when the request is unauthenticated.
func GetUserFromContext(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserKey).(*model.User); ok {
		return user
	}
	return nil
}
