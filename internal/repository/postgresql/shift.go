package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const shiftColumns = `id, name, check_in_hour, check_in_minute, check_out_hour, check_out_minute,
	late_grace_period_minutes, min_ot_minutes, is_default, check_out_next_day, work_days,
	created_at, updated_at`

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

func scanShift(row pgx.Row) (shift.ShiftPolicy, error) {
	var p shift.ShiftPolicy
	err := row.Scan(
		&p.ID, &p.Name, &p.CheckInHour, &p.CheckInMinute, &p.CheckOutHour, &p.CheckOutMinute,
		&p.LateGracePeriodMinutes, &p.MinOTMinutes, &p.IsDefault, &p.CheckOutNextDay, &p.WorkDays,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func workDaysParam(days []int) []int {
	if days == nil {
		return []int{}
	}
	return days
}

// Create implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) Create(ctx context.Context, policy shift.ShiftPolicy) (shift.ShiftPolicy, error) {
	q := GetQuerier(ctx, s.db)

	id, err := newID()
	if err != nil {
		return shift.ShiftPolicy{}, err
	}

	query := `
		INSERT INTO shift_policies (
			id, name, check_in_hour, check_in_minute, check_out_hour, check_out_minute,
			late_grace_period_minutes, min_ot_minutes, is_default, check_out_next_day, work_days,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		id, policy.Name, policy.CheckInHour, policy.CheckInMinute, policy.CheckOutHour, policy.CheckOutMinute,
		policy.LateGracePeriodMinutes, policy.MinOTMinutes, policy.IsDefault, policy.CheckOutNextDay,
		workDaysParam(policy.WorkDays),
	))
	if err != nil {
		if isUniqueViolation(err, "shift_policies_single_default") {
			return shift.ShiftPolicy{}, shift.ErrMultipleDefaultShifts
		}
		return shift.ShiftPolicy{}, fmt.Errorf("failed to create shift policy: %w", err)
	}
	return created, nil
}

// GetByID implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.ShiftPolicy, error) {
	q := GetQuerier(ctx, s.db)

	p, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shift_policies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftPolicy{}, shift.ErrShiftNotFound
		}
		return shift.ShiftPolicy{}, fmt.Errorf("failed to get shift policy: %w", err)
	}
	return p, nil
}

// List implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) List(ctx context.Context) ([]shift.ShiftPolicy, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shift_policies ORDER BY is_default DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift policies: %w", err)
	}
	defer rows.Close()

	policies := make([]shift.ShiftPolicy, 0)
	for rows.Next() {
		p, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// Update implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) Update(ctx context.Context, policy shift.ShiftPolicy) (shift.ShiftPolicy, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE shift_policies
		SET name = $2, check_in_hour = $3, check_in_minute = $4, check_out_hour = $5, check_out_minute = $6,
			late_grace_period_minutes = $7, min_ot_minutes = $8, is_default = $9, check_out_next_day = $10,
			work_days = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query,
		policy.ID, policy.Name, policy.CheckInHour, policy.CheckInMinute, policy.CheckOutHour, policy.CheckOutMinute,
		policy.LateGracePeriodMinutes, policy.MinOTMinutes, policy.IsDefault, policy.CheckOutNextDay,
		workDaysParam(policy.WorkDays),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftPolicy{}, shift.ErrShiftNotFound
		}
		if isUniqueViolation(err, "shift_policies_single_default") {
			return shift.ShiftPolicy{}, shift.ErrMultipleDefaultShifts
		}
		return shift.ShiftPolicy{}, fmt.Errorf("failed to update shift policy: %w", err)
	}
	return updated, nil
}

// Delete implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shift_policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift policy: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// ClearDefault implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) ClearDefault(ctx context.Context, keepID string) error {
	q := GetQuerier(ctx, s.db)

	_, err := q.Exec(ctx, `UPDATE shift_policies SET is_default = FALSE, updated_at = NOW() WHERE is_default AND id::text <> $1`, keepID)
	if err != nil {
		return fmt.Errorf("failed to clear default shift policy: %w", err)
	}
	return nil
}

// CountAssigned implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) CountAssigned(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, s.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE shift_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count shift assignments: %w", err)
	}
	return count, nil
}
