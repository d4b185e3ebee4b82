package swap

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/line-attendance-go/internal/service/notification"
)

type SwapServiceImpl struct {
	swap.SwapRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Service
	now          func() time.Time
}

func NewSwapService(swapRepo swap.SwapRepository, employeeRepo employee.EmployeeRepository, notifier notification.Service) swap.SwapService {
	return &SwapServiceImpl{
		SwapRepository: swapRepo,
		employeeRepo:   employeeRepo,
		notifier:       notifier,
		now:            time.Now,
	}
}

// CreateRequest implements swap.SwapService.
func (s *SwapServiceImpl) CreateRequest(ctx context.Context, req swap.CreateSwapRequest) (swap.SwapResponse, error) {
	if err := req.Validate(); err != nil {
		return swap.SwapResponse{}, err
	}
	oldDate, _ := validator.IsValidDate(req.OldDate)
	newDate, _ := validator.IsValidDate(req.NewDate)

	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return swap.SwapResponse{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return swap.SwapResponse{}, err
	}
	if !emp.IsActive {
		return swap.SwapResponse{}, employee.ErrEmployeeInactive
	}

	created, err := s.SwapRepository.Create(ctx, swap.Request{
		EmployeeID: emp.ID,
		OldDate:    oldDate,
		NewDate:    newDate,
		Reason:     req.Reason,
		Status:     approval.StatusPending,
	})
	if err != nil {
		return swap.SwapResponse{}, err
	}
	created.EmployeeName = &emp.Name

	slog.Info("swap request created", "swap_id", created.ID, "employee_id", emp.ID, "old_date", req.OldDate, "new_date", req.NewDate)
	s.notifier.NotifyAdmins(notification.SwapSubmitted(emp.Name, created))

	return swap.ToResponse(created), nil
}

// ListMine implements swap.SwapService.
func (s *SwapServiceImpl) ListMine(ctx context.Context, filter swap.SwapFilter) (swap.ListSwapResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return swap.ListSwapResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

// List implements swap.SwapService.
func (s *SwapServiceImpl) List(ctx context.Context, filter swap.SwapFilter) (swap.ListSwapResponse, error) {
	if err := filter.Validate(); err != nil {
		return swap.ListSwapResponse{}, err
	}

	requests, total, err := s.SwapRepository.List(ctx, filter)
	if err != nil {
		return swap.ListSwapResponse{}, fmt.Errorf("failed to list swap requests: %w", err)
	}

	responses := make([]swap.SwapResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, swap.ToResponse(r))
	}

	return swap.ListSwapResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}

// Get implements swap.SwapService.
func (s *SwapServiceImpl) Get(ctx context.Context, id string) (swap.SwapResponse, error) {
	r, err := s.SwapRepository.GetByID(ctx, id)
	if err != nil {
		return swap.SwapResponse{}, err
	}
	return swap.ToResponse(r), nil
}

// Approve implements swap.SwapService.
func (s *SwapServiceImpl) Approve(ctx context.Context, req approval.ReviewRequest) (swap.SwapResponse, error) {
	return s.review(ctx, req, approval.StatusApproved)
}

// Reject implements swap.SwapService.
func (s *SwapServiceImpl) Reject(ctx context.Context, req approval.ReviewRequest) (swap.SwapResponse, error) {
	return s.review(ctx, req, approval.StatusRejected)
}

func (s *SwapServiceImpl) review(ctx context.Context, req approval.ReviewRequest, status approval.Status) (swap.SwapResponse, error) {
	if err := req.Validate(status == approval.StatusRejected); err != nil {
		return swap.SwapResponse{}, err
	}

	review := approval.Review{
		Status:     status,
		ReviewedBy: jwt.ActorFromContext(ctx),
		ReviewedAt: s.now(),
	}
	if status == approval.StatusRejected {
		review.RejectionReason = req.Reason
	}

	reviewed, err := s.SwapRepository.Review(ctx, req.ID, review)
	if err != nil {
		return swap.SwapResponse{}, err
	}

	slog.Info("swap request reviewed", "swap_id", reviewed.ID, "status", status, "reviewed_by", review.ReviewedBy)

	if emp, err := s.employeeRepo.GetByID(ctx, reviewed.EmployeeID); err != nil {
		slog.Warn("swap review notification skipped", "swap_id", reviewed.ID, "error", err)
	} else {
		s.notifier.NotifyEmployee(emp.LineUserID, notification.SwapReviewed(reviewed))
	}

	return swap.ToResponse(reviewed), nil
}
