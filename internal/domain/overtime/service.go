package overtime

import (
	"context"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
)

type OvertimeService interface {
	CreateRequest(ctx context.Context, req CreateOvertimeRequest) (OvertimeResponse, error)
	ListMine(ctx context.Context, filter OvertimeFilter) (ListOvertimeResponse, error)

	List(ctx context.Context, filter OvertimeFilter) (ListOvertimeResponse, error)
	Get(ctx context.Context, id string) (OvertimeResponse, error)
	Approve(ctx context.Context, req approval.ReviewRequest) (OvertimeResponse, error)
	Reject(ctx context.Context, req approval.ReviewRequest) (OvertimeResponse, error)
}
