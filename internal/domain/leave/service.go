package leave

import (
	"context"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
)

type LeaveService interface {
	// Employee
	CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)

	// Admin
	List(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	Get(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, req approval.ReviewRequest) (LeaveResponse, error)
	Reject(ctx context.Context, req approval.ReviewRequest) (LeaveResponse, error)
}
