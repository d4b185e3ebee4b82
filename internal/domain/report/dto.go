package report

import (
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

type DailyReportRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, empty means today
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	return errs.Err()
}

type SummaryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *SummaryRequest) Validate() error {
	start, end, errs := validator.ParseDateRange(r.StartDate, r.EndDate)
	if len(errs) == 0 && end.Sub(start).Hours()/24 > 366 {
		errs.Add("end_date", ErrRangeTooLong.Error())
	}
	return errs.Err()
}

type EmployeeReportRequest struct {
	EmployeeID string `json:"employee_id"`
	SummaryRequest
}

func (r *EmployeeReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if err := r.SummaryRequest.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}
	return errs.Err()
}

// ========================================
// RESPONSES
// ========================================

type SummaryResponse struct {
	TotalDays        int    `json:"total_days"`
	PresentDays      int    `json:"present_days"`
	LateCount        int    `json:"late_count"`
	LateMinutesTotal int    `json:"late_minutes_total"`
	LeaveDays        int    `json:"leave_days"`
	AbsentDays       int    `json:"absent_days"`
	OTMinutesTotal   int    `json:"ot_minutes_total"`
	OTHours          string `json:"ot_hours"`
}

type EmployeeSummaryResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Failed       bool            `json:"failed,omitempty"`
	Summary      SummaryResponse `json:"summary"`
}

type PeriodSummaryResponse struct {
	StartDate string                    `json:"start_date"`
	EndDate   string                    `json:"end_date"`
	Employees []EmployeeSummaryResponse `json:"employees"`
}

type DailyRowResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Status       string  `json:"status"`
	StatusLabel  string  `json:"status_label"`
	Late         bool    `json:"late"`
	LateMinutes  int     `json:"late_minutes"`
	CheckIn      *string `json:"check_in,omitempty"` // HH:mm
}

type DailyOverviewResponse struct {
	Date    string             `json:"date"`
	Total   int                `json:"total"`
	Present int                `json:"present"`
	Late    int                `json:"late"`
	Leave   int                `json:"leave"`
	Absent  int                `json:"absent"`
	Errors  int                `json:"errors"`
	Rows    []DailyRowResponse `json:"rows"`
}

func ToSummaryResponse(s DerivedSummary) SummaryResponse {
	return SummaryResponse{
		TotalDays:        s.TotalDays,
		PresentDays:      s.PresentDays,
		LateCount:        s.LateCount,
		LateMinutesTotal: s.LateMinutesTotal,
		LeaveDays:        s.LeaveDays,
		AbsentDays:       s.AbsentDays,
		OTMinutesTotal:   s.OTMinutesTotal,
		OTHours:          s.OTHours().StringFixed(2),
	}
}

func ToDailyOverviewResponse(o DailyOverview) DailyOverviewResponse {
	rows := make([]DailyRowResponse, 0, len(o.Rows))
	for _, r := range o.Rows {
		row := DailyRowResponse{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Status:       string(r.Status),
			StatusLabel:  r.Status.Label(),
			Late:         r.Late,
			LateMinutes:  r.LateMinutes,
		}
		if r.Event != nil && r.Event.CheckIn != nil {
			s := r.Event.CheckIn.In(o.Date.Location()).Format("15:04")
			row.CheckIn = &s
		}
		rows = append(rows, row)
	}

	return DailyOverviewResponse{
		Date:    o.Date.Format("2006-01-02"),
		Total:   o.Total,
		Present: o.Present,
		Late:    o.Late,
		Leave:   o.Leave,
		Absent:  o.Absent,
		Errors:  o.Errors,
		Rows:    rows,
	}
}

func ToPeriodSummaryResponse(req SummaryRequest, summaries []EmployeeSummary) PeriodSummaryResponse {
	out := PeriodSummaryResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Employees: make([]EmployeeSummaryResponse, 0, len(summaries)),
	}
	for _, s := range summaries {
		out.Employees = append(out.Employees, EmployeeSummaryResponse{
			EmployeeID:   s.Employee.ID,
			EmployeeName: s.Employee.Name,
			Failed:       s.Failed,
			Summary:      ToSummaryResponse(s.Summary),
		})
	}
	return out
}
