package leave

import (
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
)

type Type string

const (
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
	TypeVacation Type = "vacation"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeSick, TypePersonal, TypeVacation:
		return true
	}
	return false
}

func (t Type) Label() string {
	switch t {
	case TypeSick:
		return "ลาป่วย"
	case TypePersonal:
		return "ลากิจ"
	case TypeVacation:
		return "ลาพักร้อน"
	}
	return string(t)
}

// Request is a leave application. StartDate and EndDate are inclusive calendar days.
type Request struct {
	ID              string
	EmployeeID      string
	Type            Type
	StartDate       time.Time
	EndDate         time.Time
	Reason          string
	Status          approval.Status
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

// Covers reports whether date falls inside the leave, comparing calendar days only.
func (r Request) Covers(date time.Time) bool {
	d := dayNumber(date)
	return d >= dayNumber(r.StartDate) && d <= dayNumber(r.EndDate)
}

// DayCount is the inclusive number of calendar days requested.
func (r Request) DayCount() int {
	n := dayNumber(r.EndDate) - dayNumber(r.StartDate) + 1
	if n < 0 {
		return 0
	}
	return n
}

func (r Request) IsApproved() bool {
	return r.Status == approval.StatusApproved
}

// dayNumber maps a date to a day index independent of clock time and location offset.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
