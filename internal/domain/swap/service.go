package swap

import (
	"context"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
)

type SwapService interface {
	CreateRequest(ctx context.Context, req CreateSwapRequest) (SwapResponse, error)
	ListMine(ctx context.Context, filter SwapFilter) (ListSwapResponse, error)

	List(ctx context.Context, filter SwapFilter) (ListSwapResponse, error)
	Get(ctx context.Context, id string) (SwapResponse, error)
	Approve(ctx context.Context, req approval.ReviewRequest) (SwapResponse, error)
	Reject(ctx context.Context, req approval.ReviewRequest) (SwapResponse, error)
}
