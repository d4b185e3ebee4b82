package leave

import (
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string `json:"-"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Reason     string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	_, _, errs := validator.ParseDateRange(r.StartDate, r.EndDate)

	if !Type(r.Type).IsValid() {
		errs.Add("type", "type must be one of: sick, personal, vacation")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

type LeaveFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Status != nil && *f.Status != "" {
		if _, ok := approval.ParseStatus(*f.Status); !ok {
			errs.Add("status", "status must be one of: pending, approved, rejected")
		}
	}

	return errs.Err()
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	Type            string  `json:"type"`
	TypeLabel       string  `json:"type_label"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	DayCount        int     `json:"day_count"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	StatusLabel     string  `json:"status_label"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Requests   []LeaveResponse `json:"requests"`
}

func ToResponse(r Request) LeaveResponse {
	resp := LeaveResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Type:            string(r.Type),
		TypeLabel:       r.Type.Label(),
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		DayCount:        r.DayCount(),
		Reason:          r.Reason,
		Status:          string(r.Status),
		StatusLabel:     r.Status.Label(),
		ReviewedBy:      r.ReviewedBy,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.ReviewedAt != nil {
		s := r.ReviewedAt.Format("2006-01-02 15:04:05")
		resp.ReviewedAt = &s
	}
	return resp
}
