package overtime

import (
	"context"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
)

type OvertimeRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter OvertimeFilter) ([]Request, int64, error)

	// ListByEmployee returns requests dated within [start, end], any status.
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)

	// ExistsActive reports a pending or approved request for the employee on date.
	ExistsActive(ctx context.Context, employeeID string, date time.Time) (bool, error)
	Review(ctx context.Context, id string, review approval.Review) (Request, error)
	CountPending(ctx context.Context) (int64, error)
}
