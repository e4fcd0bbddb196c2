package middleware

import (
	"net/http"

	"github.com/dopust-hr/leave-backend-go/internal/domain/auth"
	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
	"github.com/dopust-hr/leave-backend-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrAuthenticationRequired)
			return
		}

		if claims.UserType != user.TypeAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
