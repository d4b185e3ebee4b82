package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	report.ReportRepository
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
	aggregator   *Aggregator
	loc          *time.Location
	fanout       int
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewReportService(
	reportRepo report.ReportRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	loc *time.Location,
	fanout int,
	m *metrics.Metrics,
) report.ReportService {
	if fanout <= 0 {
		fanout = 8
	}
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
		employeeRepo:     employeeRepo,
		shiftRepo:        shiftRepo,
		aggregator:       NewAggregator(slog.Default()),
		loc:              loc,
		fanout:           fanout,
		metrics:          m,
		now:              time.Now,
	}
}

// fetchAll loads every employee's records concurrently. A failed fetch is
// kept in its result; only cancellation of ctx fails the whole call.
func (s *ReportServiceImpl) fetchAll(ctx context.Context, kind string, employees []employee.Employee, start, end time.Time) ([]EmployeeResult, error) {
	results := make([]EmployeeResult, len(employees))

	var g errgroup.Group
	g.SetLimit(s.fanout)

	for i, emp := range employees {
		g.Go(func() error {
			rec, err := s.ReportRepository.GetEmployeeRecords(ctx, emp.ID, start, end)
			if err != nil {
				s.metrics.FetchFailed(kind)
			}
			results[i] = EmployeeResult{Employee: emp, Records: rec, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// DailyReport implements report.ReportService.
func (s *ReportServiceImpl) DailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyOverview, error) {
	if err := req.Validate(); err != nil {
		return report.DailyOverview{}, err
	}
	defer s.metrics.ObserveReport("daily", time.Now())

	date := startOfDay(s.now(), s.loc)
	if req.Date != "" {
		parsed, _ := validator.IsValidDate(req.Date)
		date = dateIn(parsed, s.loc)
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.DailyOverview{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	results, err := s.fetchAll(ctx, "daily", employees, date, date)
	if err != nil {
		return report.DailyOverview{}, err
	}

	overview := s.aggregator.Daily(date, results)
	slog.Info("daily report generated",
		"date", date.Format("2006-01-02"), "total", overview.Total, "present", overview.Present, "errors", overview.Errors)
	return overview, nil
}

// Summary implements report.ReportService.
func (s *ReportServiceImpl) Summary(ctx context.Context, req report.SummaryRequest) ([]report.EmployeeSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	defer s.metrics.ObserveReport("summary", time.Now())

	start, end := s.period(req)

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	policies, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift policies: %w", err)
	}

	results, err := s.fetchAll(ctx, "summary", employees, start, end)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	summaries := make([]report.EmployeeSummary, 0, len(results))
	for _, res := range results {
		summary := report.EmployeeSummary{Employee: res.Employee}

		policy, perr := shift.ResolvePolicy(res.Employee, policies)
		switch {
		case res.Err != nil:
			slog.Warn("employee excluded from summary", "employee_id", res.Employee.ID, "error", res.Err)
			summary.Failed = true
		case perr != nil:
			slog.Warn("employee has no usable shift policy", "employee_id", res.Employee.ID, "error", perr)
			summary.Failed = true
		default:
			summary.Summary = s.aggregator.Summarize(res.Employee, policy, start, end, asOf, res.Records)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// EmployeeReport implements report.ReportService.
func (s *ReportServiceImpl) EmployeeReport(ctx context.Context, req report.EmployeeReportRequest) (report.EmployeeReport, error) {
	if err := req.Validate(); err != nil {
		return report.EmployeeReport{}, err
	}
	defer s.metrics.ObserveReport("employee", time.Now())

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.EmployeeReport{}, err
	}

	policies, err := s.shiftRepo.List(ctx)
	if err != nil {
		return report.EmployeeReport{}, fmt.Errorf("failed to list shift policies: %w", err)
	}
	policy, err := shift.ResolvePolicy(emp, policies)
	if err != nil {
		return report.EmployeeReport{}, err
	}

	start, end := s.period(req.SummaryRequest)

	rec, err := s.ReportRepository.GetEmployeeRecords(ctx, emp.ID, start, end)
	if err != nil {
		s.metrics.FetchFailed("employee")
		return report.EmployeeReport{}, fmt.Errorf("failed to load employee records: %w", err)
	}

	now := s.now()
	return report.EmployeeReport{
		Employee:  emp,
		Start:     start,
		End:       end,
		PrintedAt: now,
		Location:  s.loc,
		Summary:   s.aggregator.Summarize(emp, policy, start, end, now, rec),
		Records:   s.aggregator.Clean(emp.ID, rec),
	}, nil
}

// MyReport implements report.ReportService.
func (s *ReportServiceImpl) MyReport(ctx context.Context, req report.SummaryRequest) (report.EmployeeReport, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return report.EmployeeReport{}, err
	}
	return s.EmployeeReport(ctx, report.EmployeeReportRequest{EmployeeID: employeeID, SummaryRequest: req})
}

// period anchors a validated request's dates in the organisation time zone.
func (s *ReportServiceImpl) period(req report.SummaryRequest) (time.Time, time.Time) {
	start, end, _ := validator.ParseDateRange(req.StartDate, req.EndDate)
	return dateIn(start, s.loc), dateIn(end, s.loc)
}
