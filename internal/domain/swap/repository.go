package swap

import (
	"context"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
)

type SwapRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter SwapFilter) ([]Request, int64, error)

	// ListByEmployee returns requests filed within [start, end].
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)
	Review(ctx context.Context, id string, review approval.Review) (Request, error)
	CountPending(ctx context.Context) (int64, error)
}
