package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records today's arrival and snapshots lateness against the employee's shift
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the open session and reports informational overtime
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// ChangeStatus moves today's record through break and off-site states
	ChangeStatus(ctx context.Context, req ChangeStatusRequest) (AttendanceResponse, error)

	// GetToday tells the LIFF app what the employee can do right now
	GetToday(ctx context.Context) (TodayResponse, error)

	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Admin operations
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error
}
