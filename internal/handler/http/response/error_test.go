package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("date", "date must be in YYYY-MM-DD format")

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"validation", verrs, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"wrapped not found", fmt.Errorf("failed to get employee: %w", employee.ErrEmployeeNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"already processed", approval.ErrAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"not owner", approval.ErrNotOwner, http.StatusForbidden, "FORBIDDEN"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"line down", fmt.Errorf("failed to exchange line code: %w", auth.ErrLineUnavailable), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"ambiguous default", fmt.Errorf("resolve: %w", shift.ErrMultipleDefaultShifts), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)

			assert.Equal(t, tc.wantCode, rec.Code)
			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantErr, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("latitude", "latitude must be between -90 and 90")

	rec := httptest.NewRecorder()
	HandleError(rec, verrs)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "latitude must be between -90 and 90", body.Error.Details["latitude"])
}
