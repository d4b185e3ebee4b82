package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empA = "01900000-0000-7000-8000-00000000000a"
	empB = "01900000-0000-7000-8000-00000000000b"
	empC = "01900000-0000-7000-8000-00000000000c"
)

type fakeReportRepo struct {
	records map[string]report.Records
	failFor map[string]bool
}

func (f *fakeReportRepo) GetEmployeeRecords(ctx context.Context, employeeID string, start, end time.Time) (report.Records, error) {
	if err := ctx.Err(); err != nil {
		return report.Records{}, err
	}
	if f.failFor[employeeID] {
		return report.Records{}, errors.New("connection reset")
	}
	return f.records[employeeID], nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeShiftRepo struct {
	shift.ShiftRepository
	policies []shift.ShiftPolicy
}

func (f *fakeShiftRepo) List(ctx context.Context) ([]shift.ShiftPolicy, error) {
	return f.policies, nil
}

func newTestService() (*ReportServiceImpl, *fakeReportRepo) {
	repo := &fakeReportRepo{
		records: map[string]report.Records{
			empA: {Events: []attendance.Event{checkedIn(empA, 12, attendance.StatusLate, 16)}},
			empB: {},
		},
		failFor: map[string]bool{empC: true},
	}
	svc := NewReportService(
		repo,
		&fakeEmployeeRepo{employees: []employee.Employee{
			{ID: empA, Name: "A", IsActive: true},
			{ID: empB, Name: "B", IsActive: true},
			{ID: empC, Name: "C", IsActive: true},
		}},
		&fakeShiftRepo{policies: []shift.ShiftPolicy{weekdays}},
		bangkok, 2, nil,
	).(*ReportServiceImpl)
	svc.now = func() time.Time { return day(12).Add(20 * time.Hour) }
	return svc, repo
}

func TestDailyReport_FailedFetchDoesNotAbort(t *testing.T) {
	svc, _ := newTestService()

	o, err := svc.DailyReport(context.Background(), report.DailyReportRequest{Date: "2024-03-12"})
	require.NoError(t, err)

	assert.Equal(t, 3, o.Total)
	assert.Equal(t, 1, o.Present)
	assert.Equal(t, 1, o.Late)
	assert.Equal(t, 1, o.Errors)
	assert.Equal(t, 2, o.Absent)
	require.Len(t, o.Rows, 3)
	assert.Equal(t, empA, o.Rows[0].EmployeeID, "rows keep roster order")
	assert.Equal(t, report.DayError, o.Rows[2].Status)
}

func TestDailyReport_DefaultsToToday(t *testing.T) {
	svc, _ := newTestService()

	o, err := svc.DailyReport(context.Background(), report.DailyReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, day(12), o.Date)
}

func TestDailyReport_InvalidDate(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.DailyReport(context.Background(), report.DailyReportRequest{Date: "12/03/2024"})
	assert.Error(t, err)
}

func TestDailyReport_Cancelled(t *testing.T) {
	svc, _ := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.DailyReport(ctx, report.DailyReportRequest{Date: "2024-03-12"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummary_MarksFailedEmployees(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.Summary(context.Background(), report.SummaryRequest{StartDate: "2024-03-11", EndDate: "2024-03-12"})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.False(t, got[0].Failed)
	assert.Equal(t, 1, got[0].Summary.PresentDays)
	assert.Equal(t, 1, got[0].Summary.AbsentDays)
	assert.Equal(t, 1, got[0].Summary.LateCount)

	assert.Equal(t, 2, got[1].Summary.AbsentDays)
	assert.True(t, got[2].Failed)
}

func TestEmployeeReport(t *testing.T) {
	svc, repo := newTestService()
	rec := repo.records[empA]
	rec.Events = append(rec.Events, checkedIn(empB, 11, attendance.StatusCheckedIn, 0))
	repo.records[empA] = rec

	rep, err := svc.EmployeeReport(context.Background(), report.EmployeeReportRequest{
		EmployeeID:     empA,
		SummaryRequest: report.SummaryRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"},
	})
	require.NoError(t, err)

	assert.Equal(t, "A", rep.Employee.Name)
	assert.Equal(t, day(1), rep.Start)
	assert.Equal(t, day(31), rep.End)
	assert.Len(t, rep.Events, 1, "records of other employees are dropped")
	assert.Equal(t, 1, rep.Summary.PresentDays)
}

func TestEmployeeReport_FetchError(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.EmployeeReport(context.Background(), report.EmployeeReportRequest{
		EmployeeID:     empC,
		SummaryRequest: report.SummaryRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"},
	})
	assert.Error(t, err)
}
