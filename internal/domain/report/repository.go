package report

import (
	"context"
	"time"
)

// ReportRepository loads the raw records the aggregator folds.
type ReportRepository interface {
	// GetEmployeeRecords fetches attendance, leave, overtime and swap records of
	// one employee overlapping [start, end].
	GetEmployeeRecords(ctx context.Context, employeeID string, start, end time.Time) (Records, error)
}
