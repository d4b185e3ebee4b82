package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/line-attendance-go/internal/service/notification"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Service
	now          func() time.Time
}

func NewLeaveService(leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository, notifier notification.Service) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepo,
		employeeRepo:    employeeRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

// CreateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	startDate, endDate, _ := validator.ParseDateRange(req.StartDate, req.EndDate)

	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !emp.IsActive {
		return leave.LeaveResponse{}, employee.ErrEmployeeInactive
	}

	overlap, err := s.LeaveRepository.HasOverlap(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlap {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Request{
		EmployeeID: emp.ID,
		Type:       leave.Type(req.Type),
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     approval.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	created.EmployeeName = &emp.Name

	slog.Info("leave request created", "leave_id", created.ID, "employee_id", emp.ID, "type", created.Type, "days", created.DayCount())
	s.notifier.NotifyAdmins(notification.LeaveSubmitted(emp.Name, created))

	return leave.ToResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	requests, total, err := s.LeaveRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	r, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToResponse(r), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req approval.ReviewRequest) (leave.LeaveResponse, error) {
	return s.review(ctx, req, approval.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req approval.ReviewRequest) (leave.LeaveResponse, error) {
	return s.review(ctx, req, approval.StatusRejected)
}

func (s *LeaveServiceImpl) review(ctx context.Context, req approval.ReviewRequest, status approval.Status) (leave.LeaveResponse, error) {
	if err := req.Validate(status == approval.StatusRejected); err != nil {
		return leave.LeaveResponse{}, err
	}

	review := approval.Review{
		Status:     status,
		ReviewedBy: jwt.ActorFromContext(ctx),
		ReviewedAt: s.now(),
	}
	if status == approval.StatusRejected {
		review.RejectionReason = req.Reason
	}

	reviewed, err := s.LeaveRepository.Review(ctx, req.ID, review)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave request reviewed", "leave_id", reviewed.ID, "status", status, "reviewed_by", review.ReviewedBy)

	if emp, err := s.employeeRepo.GetByID(ctx, reviewed.EmployeeID); err != nil {
		slog.Warn("leave review notification skipped", "leave_id", reviewed.ID, "error", err)
	} else {
		s.notifier.NotifyEmployee(emp.LineUserID, notification.LeaveReviewed(reviewed))
	}

	return leave.ToResponse(reviewed), nil
}
