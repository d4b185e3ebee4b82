package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)

	// GetByEmployeeAndDate returns nil without error when nothing was recorded.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Event, error)

	// GetOpenSession returns the latest event that has a check-in but no check-out.
	GetOpenSession(ctx context.Context, employeeID string) (Event, error)

	Update(ctx context.Context, event Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AttendanceFilter) ([]Event, int64, error)

	// ListByEmployee returns events with start <= date <= end, oldest first.
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Event, error)
}
