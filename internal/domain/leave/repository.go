package leave

import (
	"context"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
)

type LeaveRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter LeaveFilter) ([]Request, int64, error)

	// ListByEmployee returns requests overlapping [start, end], any status.
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)

	// HasOverlap reports a pending or approved request of the employee overlapping [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// Review updates a pending request; it returns approval.ErrAlreadyProcessed when the request is no longer pending.
	Review(ctx context.Context, id string, review approval.Review) (Request, error)
	CountPending(ctx context.Context) (int64, error)
}
