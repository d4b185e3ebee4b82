package swap

import (
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

type CreateSwapRequest struct {
	EmployeeID string `json:"-"`
	OldDate    string `json:"old_date"` // YYYY-MM-DD
	NewDate    string `json:"new_date"` // YYYY-MM-DD
	Reason     string `json:"reason"`
}

func (r *CreateSwapRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.OldDate); !ok {
		errs.Add("old_date", "old_date must be in YYYY-MM-DD format")
	}
	if _, ok := validator.IsValidDate(r.NewDate); !ok {
		errs.Add("new_date", "new_date must be in YYYY-MM-DD format")
	} else if r.NewDate == r.OldDate {
		errs.Add("new_date", "new_date must differ from old_date")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

type SwapFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *SwapFilter) Validate() error {
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

type SwapResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	OldDate         string  `json:"old_date"`
	NewDate         string  `json:"new_date"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	StatusLabel     string  `json:"status_label"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListSwapResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Requests   []SwapResponse `json:"requests"`
}

func ToResponse(r Request) SwapResponse {
	resp := SwapResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		OldDate:         r.OldDate.Format("2006-01-02"),
		NewDate:         r.NewDate.Format("2006-01-02"),
		Reason:          r.Reason,
		Status:          string(r.Status),
		StatusLabel:     r.Status.Label(),
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
