package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dopust-hr/leave-backend-go/internal/domain/auth"
	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
	"github.com/dopust-hr/leave-backend-go/internal/handler/http/response"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type claimsKey struct{}

// UserLookup resolves the account behind a token.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

// AuthRequired rejects requests without a verified access token and stores
// its claims on the request context. Run after jwtauth.Verifier.
// The role is read from users on every request, so a changed user type
// applies to tokens issued before the change.
func AuthRequired(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if errors.Is(err, jwtauth.ErrNoTokenFound) {
					response.HandleError(w, auth.ErrAuthenticationRequired)
					return
				}
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwt.ClaimsFromToken(token)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			current, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					response.HandleError(w, auth.ErrInvalidToken)
					return
				}
				response.HandleError(w, err)
				return
			}
			claims.UserType = current.Type

			httplog.SetAttrs(r.Context(), slog.Int64("user_id", claims.UserID))

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithClaims stores authenticated claims on ctx.
func WithClaims(ctx context.Context, claims jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user's id.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
