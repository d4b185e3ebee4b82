package shift

import (
	"fmt"

	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
)

// ShiftRequest is the configuration payload for creating or replacing a policy.
type ShiftRequest struct {
	ID                     string `json:"-"`
	Name                   string `json:"name"`
	CheckInHour            int    `json:"check_in_hour"`
	CheckInMinute          int    `json:"check_in_minute"`
	CheckOutHour           int    `json:"check_out_hour"`
	CheckOutMinute         int    `json:"check_out_minute"`
	LateGracePeriodMinutes int    `json:"late_grace_period_minutes"`
	MinOTMinutes           int    `json:"min_ot_minutes"`
	IsDefault              bool   `json:"is_default"`
	CheckOutNextDay        bool   `json:"check_out_next_day"`
	WorkDays               []int  `json:"work_days"`
}

func (r *ShiftRequest) Validate() error {
	return r.ToPolicy().Validate()
}

func (r *ShiftRequest) ToPolicy() ShiftPolicy {
	return ShiftPolicy{
		ID:                     r.ID,
		Name:                   r.Name,
		CheckInHour:            r.CheckInHour,
		CheckInMinute:          r.CheckInMinute,
		CheckOutHour:           r.CheckOutHour,
		CheckOutMinute:         r.CheckOutMinute,
		LateGracePeriodMinutes: r.LateGracePeriodMinutes,
		MinOTMinutes:           r.MinOTMinutes,
		IsDefault:              r.IsDefault,
		CheckOutNextDay:        r.CheckOutNextDay,
		WorkDays:               r.WorkDays,
	}
}

// Validate rejects policies the evaluator must never see.
func (p ShiftPolicy) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Name) {
		errs.Add("name", "name is required")
	}
	if p.CheckInHour < 0 || p.CheckInHour > 23 {
		errs.Add("check_in_hour", "check_in_hour must be between 0 and 23")
	}
	if p.CheckInMinute < 0 || p.CheckInMinute > 59 {
		errs.Add("check_in_minute", "check_in_minute must be between 0 and 59")
	}
	if p.CheckOutHour < 0 || p.CheckOutHour > 23 {
		errs.Add("check_out_hour", "check_out_hour must be between 0 and 23")
	}
	if p.CheckOutMinute < 0 || p.CheckOutMinute > 59 {
		errs.Add("check_out_minute", "check_out_minute must be between 0 and 59")
	}
	if p.LateGracePeriodMinutes < 0 {
		errs.Add("late_grace_period_minutes", "late_grace_period_minutes must be a non-negative number")
	}
	if p.MinOTMinutes < 0 {
		errs.Add("min_ot_minutes", "min_ot_minutes must be a non-negative number")
	}
	for _, d := range p.WorkDays {
		if d < 1 || d > 7 {
			errs.Add("work_days", "work_days must contain ISO weekdays between 1 and 7")
			break
		}
	}

	return errs.Err()
}

type ShiftResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	CheckIn                string `json:"check_in"`
	CheckOut               string `json:"check_out"`
	CheckInHour            int    `json:"check_in_hour"`
	CheckInMinute          int    `json:"check_in_minute"`
	CheckOutHour           int    `json:"check_out_hour"`
	CheckOutMinute         int    `json:"check_out_minute"`
	LateGracePeriodMinutes int    `json:"late_grace_period_minutes"`
	MinOTMinutes           int    `json:"min_ot_minutes"`
	IsDefault              bool   `json:"is_default"`
	CheckOutNextDay        bool   `json:"check_out_next_day"`
	WorkDays               []int  `json:"work_days"`
	UpdatedAt              string `json:"updated_at"`
}

func ToResponse(p ShiftPolicy) ShiftResponse {
	workDays := p.WorkDays
	if workDays == nil {
		workDays = []int{}
	}
	return ShiftResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		CheckIn:                fmt.Sprintf("%02d:%02d", p.CheckInHour, p.CheckInMinute),
		CheckOut:               fmt.Sprintf("%02d:%02d", p.CheckOutHour, p.CheckOutMinute),
		CheckInHour:            p.CheckInHour,
		CheckInMinute:          p.CheckInMinute,
		CheckOutHour:           p.CheckOutHour,
		CheckOutMinute:         p.CheckOutMinute,
		LateGracePeriodMinutes: p.LateGracePeriodMinutes,
		MinOTMinutes:           p.MinOTMinutes,
		IsDefault:              p.IsDefault,
		CheckOutNextDay:        p.CheckOutNextDay,
		WorkDays:               workDays,
		UpdatedAt:              p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
