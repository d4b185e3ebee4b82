package shift

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/line-attendance-go/internal/repository/postgresql"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	tx           postgresql.Transactor
}

func NewShiftService(shiftRepo shift.ShiftRepository, employeeRepo employee.EmployeeRepository, tx postgresql.Transactor) shift.ShiftService {
	return &ShiftServiceImpl{
		ShiftRepository: shiftRepo,
		employeeRepo:    employeeRepo,
		tx:              tx,
	}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.ShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var created shift.ShiftPolicy
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		policy := req.ToPolicy()
		wantDefault := policy.IsDefault
		policy.IsDefault = false

		var err error
		created, err = s.ShiftRepository.Create(txCtx, policy)
		if err != nil {
			return err
		}

		if wantDefault {
			created, err = s.makeDefault(txCtx, created)
		}
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift policy: %w", err)
	}

	slog.Info("shift policy created", "shift_id", created.ID, "name", created.Name, "is_default", created.IsDefault)
	return shift.ToResponse(created), nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.ShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var updated shift.ShiftPolicy
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.ShiftRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		policy := req.ToPolicy()
		if existing.IsDefault && !policy.IsDefault {
			// Unsetting the only default would leave unassigned employees without a policy.
			return shift.ErrNoDefaultShift
		}

		wantDefault := policy.IsDefault && !existing.IsDefault
		if wantDefault {
			policy.IsDefault = false
		}

		updated, err = s.ShiftRepository.Update(txCtx, policy)
		if err != nil {
			return err
		}
		if wantDefault {
			updated, err = s.makeDefault(txCtx, updated)
		}
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift policy: %w", err)
	}

	slog.Info("shift policy updated", "shift_id", updated.ID, "is_default", updated.IsDefault)
	return shift.ToResponse(updated), nil
}

// makeDefault clears every other default before flagging p, inside the caller's transaction.
func (s *ShiftServiceImpl) makeDefault(txCtx context.Context, p shift.ShiftPolicy) (shift.ShiftPolicy, error) {
	if err := s.ShiftRepository.ClearDefault(txCtx, p.ID); err != nil {
		return shift.ShiftPolicy{}, err
	}
	p.IsDefault = true
	return s.ShiftRepository.Update(txCtx, p)
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	p, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.IsDefault {
		return shift.ErrCannotDeleteDefault
	}

	assigned, err := s.ShiftRepository.CountAssigned(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return shift.ErrShiftInUse
	}

	if err := s.ShiftRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete shift policy: %w", err)
	}
	slog.Info("shift policy deleted", "shift_id", id)
	return nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	p, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(p), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	policies, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift policies: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, shift.ToResponse(p))
	}
	return responses, nil
}

// PolicyFor implements shift.ShiftService.
func (s *ShiftServiceImpl) PolicyFor(ctx context.Context, employeeID string) (shift.ShiftPolicy, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return shift.ShiftPolicy{}, err
	}

	policies, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return shift.ShiftPolicy{}, fmt.Errorf("failed to list shift policies: %w", err)
	}

	return shift.ResolvePolicy(emp, policies)
}
