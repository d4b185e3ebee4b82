package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"golang.org/x/sync/errgroup"
)

// PendingCounter is implemented by the leave, overtime and swap repositories.
type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

type DashboardServiceImpl struct {
	reportService report.ReportService
	leaves        PendingCounter
	overtimes     PendingCounter
	swaps         PendingCounter
	now           func() time.Time
}

func NewDashboardService(reportService report.ReportService, leaves, overtimes, swaps PendingCounter) dashboard.DashboardService {
	return &DashboardServiceImpl{
		reportService: reportService,
		leaves:        leaves,
		overtimes:     overtimes,
		swaps:         swaps,
		now:           time.Now,
	}
}

// GetDashboard runs the daily report and the three pending counts in parallel.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	var (
		overview report.DailyOverview
		pending  dashboard.PendingRequestsResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		o, err := s.reportService.DailyReport(gCtx, report.DailyReportRequest{})
		if err != nil {
			return err
		}
		overview = o
		return nil
	})

	g.Go(func() error {
		n, err := s.leaves.CountPending(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count pending leave requests: %w", err)
		}
		pending.Leave = n
		return nil
	})

	g.Go(func() error {
		n, err := s.overtimes.CountPending(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count pending overtime requests: %w", err)
		}
		pending.Overtime = n
		return nil
	})

	g.Go(func() error {
		n, err := s.swaps.CountPending(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count pending swap requests: %w", err)
		}
		pending.Swap = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	pending.Total = pending.Leave + pending.Overtime + pending.Swap

	return &dashboard.DashboardResponse{
		Today:           report.ToDailyOverviewResponse(overview),
		AttendanceStats: dashboard.ToAttendanceStats(overview),
		Pending:         pending,
		UpdatedAt:       s.now().Format("2006-01-02 15:04:05"),
	}, nil
}
