package report

import (
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
	"github.com/shopspring/decimal"
)

// DayStatus classifies one employee on one day.
type DayStatus string

const (
	DayPresent DayStatus = "present"
	DayLeave   DayStatus = "leave"
	DayAbsent  DayStatus = "absent"
	// DayError marks an employee whose records could not be fetched.
	DayError DayStatus = "error"
)

func (s DayStatus) Label() string {
	switch s {
	case DayPresent:
		return "มาทำงาน"
	case DayLeave:
		return "ลา"
	case DayAbsent:
		return "ขาดงาน"
	case DayError:
		return "ดึงข้อมูลไม่สำเร็จ"
	}
	return string(s)
}

// Records is everything fetched for one employee over a period.
type Records struct {
	Events    []attendance.Event
	Leaves    []leave.Request
	Overtimes []overtime.Request
	Swaps     []swap.Request
}

type EmployeeDay struct {
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	Status       DayStatus

	// Late and LateMinutes come from the stored check-in snapshot.
	Late        bool
	LateMinutes int

	Event *attendance.Event
	Leave *leave.Request
}

// DerivedSummary is computed on demand, never stored. Late days are a subset
// of PresentDays and are counted in both.
type DerivedSummary struct {
	TotalDays        int
	PresentDays      int
	LateCount        int
	LateMinutesTotal int
	LeaveDays        int
	AbsentDays       int
	OTMinutesTotal   int
}

func (s DerivedSummary) OTHours() decimal.Decimal {
	return decimal.NewFromInt(int64(s.OTMinutesTotal)).Div(decimal.NewFromInt(60))
}

// DailyOverview counts employees, not events, for one date.
// Absent is Total minus Present minus Leave, so it includes Errors.
type DailyOverview struct {
	Date    time.Time
	Total   int
	Present int
	Late    int
	Leave   int
	Absent  int
	Errors  int
	Rows    []EmployeeDay
}

type EmployeeSummary struct {
	Employee employee.Employee
	Summary  DerivedSummary
	Failed   bool
}

// EmployeeReport backs the CSV export of one employee.
type EmployeeReport struct {
	Employee  employee.Employee
	Start     time.Time
	End       time.Time
	PrintedAt time.Time
	Location  *time.Location
	Summary   DerivedSummary
	Records
}
