package attendance

import (
	"time"
)

// Event is one employee's attendance record for one work day.
type Event struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status

	// LateMinutes is captured once at check-in and never recomputed, so
	// historical reports stay stable when a shift policy is edited later.
	LateMinutes int

	Location         *string
	Latitude         *float64
	Longitude        *float64
	DistanceFromSite *float64
	PhotoURL         *string
	Note             *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	EmployeeName *string
}

// IsLate reads the stored snapshot.
func (e Event) IsLate() bool {
	return e.Status == StatusLate || e.LateMinutes > 0
}

// IsMalformed reports records aggregation must skip.
func (e Event) IsMalformed() bool {
	return e.EmployeeID == "" || e.Date.IsZero() || !e.Status.IsValid() || e.LateMinutes < 0
}

type Status string

const (
	StatusCheckedIn       Status = "checked_in"
	StatusCheckedOut      Status = "checked_out"
	StatusOnLeave         Status = "on_leave"
	StatusLate            Status = "late"
	StatusPreBreak        Status = "pre_break"
	StatusPostBreak       Status = "post_break"
	StatusOffsiteOutbound Status = "offsite_outbound"
	StatusOffsiteReturn   Status = "offsite_return"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusCheckedIn,
	StatusCheckedOut,
	StatusOnLeave,
	StatusLate,
	StatusPreBreak,
	StatusPostBreak,
	StatusOffsiteOutbound,
	StatusOffsiteReturn,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.IsValid()
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCheckedIn, StatusCheckedOut, StatusOnLeave, StatusLate,
		StatusPreBreak, StatusPostBreak, StatusOffsiteOutbound, StatusOffsiteReturn:
		return true
	}
	return false
}

// Label is the Thai text shown in LINE messages and CSV exports.
func (s Status) Label() string {
	switch s {
	case StatusCheckedIn:
		return "เข้างาน"
	case StatusCheckedOut:
		return "ออกงาน"
	case StatusOnLeave:
		return "ลา"
	case StatusLate:
		return "มาสาย"
	case StatusPreBreak:
		return "พักเบรก"
	case StatusPostBreak:
		return "กลับจากเบรก"
	case StatusOffsiteOutbound:
		return "ออกนอกสถานที่"
	case StatusOffsiteReturn:
		return "กลับเข้าสถานที่"
	}
	return string(s)
}

// CountsAsPresent reports whether the employee was at work that day.
// Every status reachable only after a check-in counts.
func (s Status) CountsAsPresent() bool {
	switch s {
	case StatusCheckedIn, StatusLate, StatusCheckedOut,
		StatusPreBreak, StatusPostBreak, StatusOffsiteOutbound, StatusOffsiteReturn:
		return true
	case StatusOnLeave:
		return false
	}
	return false
}

// CanTransitionTo reports whether an employee may move from s to next during the day.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusCheckedIn, StatusLate, StatusPostBreak, StatusOffsiteReturn:
		return next == StatusPreBreak || next == StatusOffsiteOutbound || next == StatusCheckedOut
	case StatusPreBreak:
		return next == StatusPostBreak
	case StatusOffsiteOutbound:
		return next == StatusOffsiteReturn
	case StatusCheckedOut, StatusOnLeave:
		return false
	}
	return false
}
