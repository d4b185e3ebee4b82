package employee

import (
	"strings"

	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	LineUserID string  `json:"line_user_id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	ShiftID    *string `json:"shift_id,omitempty"`
	Role       string  `json:"role"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLineUserID(r.LineUserID) {
		errs.Add("line_user_id", "line_user_id must be a LINE user ID")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if r.Role == "" {
		r.Role = string(RoleEmployee)
	}
	if !Role(r.Role).IsValid() {
		errs.Add("role", "role must be one of: admin, employee")
	}
	if r.ShiftID != nil && *r.ShiftID != "" && !validator.IsValidUUID(*r.ShiftID) {
		errs.Add("shift_id", "shift_id must be a valid UUID")
	}

	return errs.Err()
}

// UpdateEmployeeRequest replaces only the fields that are set.
// An empty ShiftID moves the employee back to the default shift.
type UpdateEmployeeRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
	ShiftID  *string `json:"shift_id,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs.Add("role", "role must be one of: admin, employee")
	}
	if r.ShiftID != nil && *r.ShiftID != "" && !validator.IsValidUUID(*r.ShiftID) {
		errs.Add("shift_id", "shift_id must be a valid UUID")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}
	if f.Name != nil {
		trimmed := strings.TrimSpace(*f.Name)
		f.Name = &trimmed
	}

	return errs.Err()
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	LineUserID string  `json:"line_user_id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	ShiftID    *string `json:"shift_id,omitempty"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		LineUserID: e.LineUserID,
		Name:       e.Name,
		Position:   e.Position,
		ShiftID:    e.ShiftID,
		Role:       string(e.Role),
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
