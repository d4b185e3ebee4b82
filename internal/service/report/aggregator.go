package report

import (
	"log/slog"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
)

// Aggregator folds already fetched records into report figures. It does no I/O
// and keeps no state between calls.
type Aggregator struct {
	logger *slog.Logger
}

func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// EmployeeResult is one employee's fetch outcome in a fan-out.
type EmployeeResult struct {
	Employee employee.Employee
	Records  report.Records
	Err      error
}

// DeriveDay classifies one employee's day. Approved leave wins over a
// check-in on the same day.
func (a *Aggregator) DeriveDay(emp employee.Employee, date time.Time, rec report.Records) report.EmployeeDay {
	day := report.EmployeeDay{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         date,
		Status:       report.DayAbsent,
	}

	for i := range rec.Leaves {
		l := &rec.Leaves[i]
		if l.IsApproved() && l.Covers(date) {
			day.Status = report.DayLeave
			day.Leave = l
			return day
		}
	}

	var onLeave *attendance.Event
	for i := range rec.Events {
		ev := &rec.Events[i]
		if !sameDay(ev.Date, date) {
			continue
		}
		if ev.Status.CountsAsPresent() {
			day.Status = report.DayPresent
			day.Event = ev
			day.Late = ev.IsLate()
			day.LateMinutes = ev.LateMinutes
			return day
		}
		if ev.Status == attendance.StatusOnLeave {
			onLeave = ev
		}
	}

	if onLeave != nil {
		day.Status = report.DayLeave
		day.Event = onLeave
	}
	return day
}

// Daily builds the organisation view for one date. A failed fetch yields an
// error row and never aborts the rest.
func (a *Aggregator) Daily(date time.Time, results []EmployeeResult) report.DailyOverview {
	overview := report.DailyOverview{
		Date:  date,
		Total: len(results),
		Rows:  make([]report.EmployeeDay, 0, len(results)),
	}

	for _, res := range results {
		if res.Err != nil {
			a.logger.Warn("employee excluded from daily report",
				"employee_id", res.Employee.ID, "date", date.Format("2006-01-02"), "error", res.Err)
			overview.Errors++
			overview.Rows = append(overview.Rows, report.EmployeeDay{
				EmployeeID:   res.Employee.ID,
				EmployeeName: res.Employee.Name,
				Date:         date,
				Status:       report.DayError,
			})
			continue
		}

		day := a.DeriveDay(res.Employee, date, a.Clean(res.Employee.ID, res.Records))
		switch day.Status {
		case report.DayPresent:
			overview.Present++
			if day.Late {
				overview.Late++
			}
		case report.DayLeave:
			overview.Leave++
		case report.DayAbsent, report.DayError:
		}
		overview.Rows = append(overview.Rows, day)
	}

	overview.Absent = overview.Total - overview.Present - overview.Leave
	return overview
}

// Summarize folds [start, end] for one employee, counting employee-days.
// Days after asOf are not counted; they have not happened yet. Absent days are
// scheduled work days with no attendance or leave; an approved swap moves a
// scheduled day to its new date.
func (a *Aggregator) Summarize(emp employee.Employee, policy shift.ShiftPolicy, start, end, asOf time.Time, rec report.Records) report.DerivedSummary {
	rec = a.Clean(emp.ID, rec)
	var s report.DerivedSummary

	loc := start.Location()
	last := dateIn(end, loc)
	if today := startOfDay(asOf, loc); today.Before(last) {
		last = today
	}

	for d := dateIn(start, loc); !d.After(last); d = d.AddDate(0, 0, 1) {
		day := a.DeriveDay(emp, d, rec)
		scheduled := isScheduled(policy, d, rec.Swaps)

		switch day.Status {
		case report.DayPresent:
			s.TotalDays++
			s.PresentDays++
			if day.Late {
				s.LateCount++
				s.LateMinutesTotal += day.LateMinutes
			}
		case report.DayLeave:
			s.TotalDays++
			s.LeaveDays++
		case report.DayAbsent, report.DayError:
			if scheduled {
				s.TotalDays++
				s.AbsentDays++
			}
		}
	}

	s.OTMinutesTotal = OTMinutes(rec.Overtimes, start, end)
	return s
}

// OTMinutes sums approved overtime dated within [start, end]. Overtime is never
// derived from check-out times.
func OTMinutes(requests []overtime.Request, start, end time.Time) int {
	total := 0
	for _, r := range requests {
		if !r.IsApproved() || !withinDays(r.Date, start, end) {
			continue
		}
		if m, ok := r.Minutes(); ok {
			total += m
		}
	}
	return total
}

// Clean drops records that belong to someone else or cannot be interpreted.
func (a *Aggregator) Clean(employeeID string, rec report.Records) report.Records {
	out := report.Records{
		Events:    make([]attendance.Event, 0, len(rec.Events)),
		Leaves:    make([]leave.Request, 0, len(rec.Leaves)),
		Overtimes: make([]overtime.Request, 0, len(rec.Overtimes)),
		Swaps:     make([]swap.Request, 0, len(rec.Swaps)),
	}

	for _, ev := range rec.Events {
		if ev.IsMalformed() || ev.EmployeeID != employeeID {
			a.logger.Warn("skipping malformed attendance record", "employee_id", employeeID, "record_id", ev.ID, "status", ev.Status)
			continue
		}
		out.Events = append(out.Events, ev)
	}
	for _, l := range rec.Leaves {
		if l.EmployeeID != employeeID || !l.Status.IsValid() || l.EndDate.Before(l.StartDate) {
			a.logger.Warn("skipping malformed leave record", "employee_id", employeeID, "record_id", l.ID)
			continue
		}
		out.Leaves = append(out.Leaves, l)
	}
	for _, o := range rec.Overtimes {
		if _, ok := o.Minutes(); !ok || o.EmployeeID != employeeID || !o.Status.IsValid() {
			a.logger.Warn("skipping malformed overtime record", "employee_id", employeeID, "record_id", o.ID)
			continue
		}
		out.Overtimes = append(out.Overtimes, o)
	}
	for _, sw := range rec.Swaps {
		if sw.EmployeeID != employeeID || !sw.Status.IsValid() || sw.OldDate.IsZero() || sw.NewDate.IsZero() {
			a.logger.Warn("skipping malformed swap record", "employee_id", employeeID, "record_id", sw.ID)
			continue
		}
		out.Swaps = append(out.Swaps, sw)
	}

	return out
}

// OTMinutesOn sums approved overtime for a single day, used by the CSV rows.
func OTMinutesOn(requests []overtime.Request, date time.Time) int {
	return OTMinutes(requests, date, date)
}

func isScheduled(policy shift.ShiftPolicy, d time.Time, swaps []swap.Request) bool {
	scheduled := policy.IsWorkDay(d)
	for _, sw := range swaps {
		if sw.Status != approval.StatusApproved {
			continue
		}
		if sameDay(sw.NewDate, d) {
			return true
		}
		if sameDay(sw.OldDate, d) {
			scheduled = false
		}
	}
	return scheduled
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// withinDays compares calendar days, ignoring clock time and offset.
func withinDays(t, start, end time.Time) bool {
	d := civil(t)
	return !d.Before(civil(start)) && !d.After(civil(end))
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dateIn keeps t's calendar date and moves it to midnight in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// startOfDay is midnight of the day the instant t falls on in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
