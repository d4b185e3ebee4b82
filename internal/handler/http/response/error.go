package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaim):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrLineAccountNotLinked):
		Forbidden(w, "LINE account is not registered, please contact your administrator")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrLineUnavailable):
		BadGateway(w, "LINE is not responding, please try again")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrLineUserIDExists):
		Conflict(w, "LINE user is already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")
	case errors.Is(err, employee.ErrCannotDeactivateSelf):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrInvalidLineUserID), errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift policy not found")
	case errors.Is(err, shift.ErrCannotDeleteDefault):
		Conflict(w, "The default shift policy cannot be deleted")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift policy is assigned to employees")
	case errors.Is(err, shift.ErrNoDefaultShift), errors.Is(err, shift.ErrMultipleDefaultShifts):
		slog.Error("shift configuration error", "error", err)
		InternalServerError(w, "Shift configuration is invalid, please contact your administrator")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance already recorded for this employee and date")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "You have not checked in yet", nil)
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Please allow location access to check in", nil)
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		BadRequest(w, "You are outside the allowed radius", nil)
	case errors.Is(err, attendance.ErrInvalidTransition), errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Request workflow errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, overtime.ErrOvertimeRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrDuplicateOvertime):
		Conflict(w, "An overtime request already exists for this date")
	case errors.Is(err, swap.ErrSwapRequestNotFound):
		NotFound(w, "Shift swap request not found")
	case errors.Is(err, approval.ErrAlreadyProcessed):
		Conflict(w, "Request already processed")
	case errors.Is(err, approval.ErrNotOwner):
		Forbidden(w, "Request belongs to another employee")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange), errors.Is(err, report.ErrRangeTooLong):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
