package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withToken(t *testing.T, role string) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret", "1h")
	tokenStr, _, err := svc.GenerateAccessToken(jwt.Subject{Name: "tester", Role: role})
	require.NoError(t, err)
	token, err := svc.JWTAuth().Decode(tokenStr)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name string
		ctx  context.Context
		want int
	}{
		{"admin", withToken(t, "admin"), http.StatusNoContent},
		{"employee", withToken(t, "employee"), http.StatusForbidden},
		{"no token", context.Background(), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil).WithContext(tc.ctx)
			AdminOnly(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(withToken(t, "employee"))
	RequireRole(employee.RoleAdmin, employee.RoleEmployee)(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
