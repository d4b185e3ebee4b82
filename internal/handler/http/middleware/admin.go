package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
)

// RequireRole admits tokens whose role claim is one of roles.
func RequireRole(roles ...employee.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := jwt.RoleFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !slices.Contains(roles, employee.Role(role)) {
				slog.Warn("role denied", "path", r.URL.Path, "role", role, "actor", jwt.ActorFromContext(r.Context()))
				response.HandleError(w, auth.ErrAdminPrivilegeRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly guards the admin console routes.
var AdminOnly = RequireRole(employee.RoleAdmin)
