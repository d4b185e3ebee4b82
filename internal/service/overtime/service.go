package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/line-attendance-go/internal/service/notification"
)

type OvertimeServiceImpl struct {
	overtime.OvertimeRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Service
	now          func() time.Time
}

func NewOvertimeService(overtimeRepo overtime.OvertimeRepository, employeeRepo employee.EmployeeRepository, notifier notification.Service) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		OvertimeRepository: overtimeRepo,
		employeeRepo:       employeeRepo,
		notifier:           notifier,
		now:                time.Now,
	}
}

// CreateRequest implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) CreateRequest(ctx context.Context, req overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if !emp.IsActive {
		return overtime.OvertimeResponse{}, employee.ErrEmployeeInactive
	}

	exists, err := s.OvertimeRepository.ExistsActive(ctx, emp.ID, date)
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to check existing overtime: %w", err)
	}
	if exists {
		return overtime.OvertimeResponse{}, overtime.ErrDuplicateOvertime
	}

	created, err := s.OvertimeRepository.Create(ctx, overtime.Request{
		EmployeeID: emp.ID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
		Status:     approval.StatusPending,
	})
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	created.EmployeeName = &emp.Name

	minutes, _ := created.Minutes()
	slog.Info("overtime request created", "overtime_id", created.ID, "employee_id", emp.ID, "minutes", minutes)
	s.notifier.NotifyAdmins(notification.OvertimeSubmitted(emp.Name, created))

	return overtime.ToResponse(created), nil
}

// ListMine implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ListMine(ctx context.Context, filter overtime.OvertimeFilter) (overtime.ListOvertimeResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return overtime.ListOvertimeResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

// List implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) List(ctx context.Context, filter overtime.OvertimeFilter) (overtime.ListOvertimeResponse, error) {
	if err := filter.Validate(); err != nil {
		return overtime.ListOvertimeResponse{}, err
	}

	requests, total, err := s.OvertimeRepository.List(ctx, filter)
	if err != nil {
		return overtime.ListOvertimeResponse{}, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	responses := make([]overtime.OvertimeResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, overtime.ToResponse(r))
	}

	return overtime.ListOvertimeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}

// Get implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Get(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	r, err := s.OvertimeRepository.GetByID(ctx, id)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return overtime.ToResponse(r), nil
}

// Approve implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Approve(ctx context.Context, req approval.ReviewRequest) (overtime.OvertimeResponse, error) {
	return s.review(ctx, req, approval.StatusApproved)
}

// Reject implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Reject(ctx context.Context, req approval.ReviewRequest) (overtime.OvertimeResponse, error) {
	return s.review(ctx, req, approval.StatusRejected)
}

func (s *OvertimeServiceImpl) review(ctx context.Context, req approval.ReviewRequest, status approval.Status) (overtime.OvertimeResponse, error) {
	if err := req.Validate(status == approval.StatusRejected); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	review := approval.Review{
		Status:     status,
		ReviewedBy: jwt.ActorFromContext(ctx),
		ReviewedAt: s.now(),
	}
	if status == approval.StatusRejected {
		review.RejectionReason = req.Reason
	}

	reviewed, err := s.OvertimeRepository.Review(ctx, req.ID, review)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	slog.Info("overtime request reviewed", "overtime_id", reviewed.ID, "status", status, "reviewed_by", review.ReviewedBy)

	if emp, err := s.employeeRepo.GetByID(ctx, reviewed.EmployeeID); err != nil {
		slog.Warn("overtime review notification skipped", "overtime_id", reviewed.ID, "error", err)
	} else {
		s.notifier.NotifyEmployee(emp.LineUserID, notification.OvertimeReviewed(reviewed))
	}

	return overtime.ToResponse(reviewed), nil
}
