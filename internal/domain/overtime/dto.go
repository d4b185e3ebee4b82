package overtime

import (
	"fmt"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateOvertimeRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`       // YYYY-MM-DD
	StartTime  string `json:"start_time"` // HH:mm
	EndTime    string `json:"end_time"`   // HH:mm
	Reason     string `json:"reason"`
}

func (r *CreateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	sh, sm, startOK := validator.IsValidClock(r.StartTime)
	if !startOK {
		errs.Add("start_time", "start_time must be in HH:mm format")
	}
	eh, em, endOK := validator.IsValidClock(r.EndTime)
	if !endOK {
		errs.Add("end_time", "end_time must be in HH:mm format")
	}
	if startOK && endOK {
		if sh*60+sm == eh*60+em {
			errs.Add("end_time", "end_time must differ from start_time")
		}
		// Stored as zero-padded HH:mm.
		r.StartTime = fmt.Sprintf("%02d:%02d", sh, sm)
		r.EndTime = fmt.Sprintf("%02d:%02d", eh, em)
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

type OvertimeFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *OvertimeFilter) Validate() error {
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

type OvertimeResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Hours           string  `json:"hours"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	StatusLabel     string  `json:"status_label"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListOvertimeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Requests   []OvertimeResponse `json:"requests"`
}

// Hours renders minutes as hours with two decimals.
func Hours(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).StringFixed(2)
}

func ToResponse(r Request) OvertimeResponse {
	minutes, _ := r.Minutes()
	resp := OvertimeResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Date:            r.Date.Format("2006-01-02"),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Hours:           Hours(minutes),
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
