package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db        *database.DB
	events    *attendanceRepository
	leaves    *leaveRepositoryImpl
	overtimes *overtimeRepositoryImpl
	swaps     *swapRepositoryImpl
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{
		db:        db,
		events:    &attendanceRepository{db: db},
		leaves:    &leaveRepositoryImpl{db: db},
		overtimes: &overtimeRepositoryImpl{db: db},
		swaps:     &swapRepositoryImpl{db: db},
	}
}

// GetEmployeeRecords loads everything the aggregator needs for one employee
// and [start, end]. Leaves overlapping the range are included whole.
func (r *reportRepositoryImpl) GetEmployeeRecords(ctx context.Context, employeeID string, start, end time.Time) (report.Records, error) {
	var (
		rec report.Records
		err error
	)

	if rec.Events, err = r.events.ListByEmployee(ctx, employeeID, start, end); err != nil {
		return report.Records{}, fmt.Errorf("failed to load attendance for report: %w", err)
	}
	if rec.Leaves, err = r.leaves.ListByEmployee(ctx, employeeID, start, end); err != nil {
		return report.Records{}, fmt.Errorf("failed to load leave for report: %w", err)
	}
	if rec.Overtimes, err = r.overtimes.ListByEmployee(ctx, employeeID, start, end); err != nil {
		return report.Records{}, fmt.Errorf("failed to load overtime for report: %w", err)
	}
	if rec.Swaps, err = r.swaps.ListByEmployee(ctx, employeeID, start, end); err != nil {
		return report.Records{}, fmt.Errorf("failed to load swaps for report: %w", err)
	}

	return rec, nil
}
