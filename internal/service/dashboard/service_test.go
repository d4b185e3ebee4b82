package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportService struct {
	report.ReportService
	overview report.DailyOverview
	err      error
}

func (f *fakeReportService) DailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyOverview, error) {
	return f.overview, f.err
}

type countFunc func(ctx context.Context) (int64, error)

func (f countFunc) CountPending(ctx context.Context) (int64, error) { return f(ctx) }

func constant(n int64) PendingCounter {
	return countFunc(func(context.Context) (int64, error) { return n, nil })
}

func TestGetDashboard(t *testing.T) {
	date := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	svc := NewDashboardService(
		&fakeReportService{overview: report.DailyOverview{Date: date, Total: 4, Present: 2, Late: 1, Leave: 1, Absent: 1}},
		constant(2), constant(1), constant(0),
	)

	got, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-12", got.Today.Date)
	assert.Equal(t, int64(3), got.Pending.Total)
	assert.Equal(t, int64(2), got.Pending.Leave)
	assert.Equal(t, 1, got.AttendanceStats.OnTime)
	assert.InDelta(t, 25.0, got.AttendanceStats.LatePercent, 0.001)
	assert.InDelta(t, 25.0, got.AttendanceStats.AbsentPercent, 0.001)
}

func TestGetDashboard_PropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := NewDashboardService(
		&fakeReportService{},
		constant(0),
		countFunc(func(context.Context) (int64, error) { return 0, boom }),
		constant(0),
	)

	_, err := svc.GetDashboard(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGetDashboard_EmptyRoster(t *testing.T) {
	svc := NewDashboardService(&fakeReportService{}, constant(0), constant(0), constant(0))

	got, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.AttendanceStats.OnTimePercent)
}
