package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// DailyReport classifies every active employee for one date
	DailyReport(ctx context.Context, req DailyReportRequest) (DailyOverview, error)

	// Summary folds a period per active employee
	Summary(ctx context.Context, req SummaryRequest) ([]EmployeeSummary, error)

	// EmployeeReport gathers one employee's period for export
	EmployeeReport(ctx context.Context, req EmployeeReportRequest) (EmployeeReport, error)

	// MyReport is EmployeeReport for the employee behind the access token
	MyReport(ctx context.Context, req SummaryRequest) (EmployeeReport, error)
}
