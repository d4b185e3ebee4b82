package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const overtimeColumns = `o.id, o.employee_id, o.date, o.start_time, o.end_time, o.reason, o.status,
	o.reviewed_by, o.reviewed_at, o.rejection_reason, o.created_at, o.updated_at, e.name`

const overtimeFrom = `FROM overtime_requests o LEFT JOIN employees e ON e.id = o.employee_id`

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

func scanOvertime(row pgx.Row) (overtime.Request, error) {
	var o overtime.Request
	err := row.Scan(
		&o.ID, &o.EmployeeID, &o.Date, &o.StartTime, &o.EndTime, &o.Reason, &o.Status,
		&o.ReviewedBy, &o.ReviewedAt, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt, &o.EmployeeName,
	)
	return o, err
}

// Create implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return overtime.Request{}, err
	}

	query := `
		INSERT INTO overtime_requests (id, employee_id, date, start_time, end_time, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id, req.EmployeeID, req.Date, req.StartTime, req.EndTime, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return req, nil
}

// GetByID implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanOvertime(q.QueryRow(ctx, `SELECT `+overtimeColumns+` `+overtimeFrom+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Request{}, overtime.ErrOvertimeRequestNotFound
		}
		return overtime.Request{}, fmt.Errorf("failed to get overtime request: %w", err)
	}
	return o, nil
}

// List implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) List(ctx context.Context, filter overtime.OvertimeFilter) ([]overtime.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args, argIdx := requestWhere("o", filter.EmployeeID, filter.Status)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) `+overtimeFrom+` WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count overtime requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY o.date DESC, o.created_at DESC
		LIMIT $%d OFFSET $%d
	`, overtimeColumns, overtimeFrom, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	requests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListByEmployee implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]overtime.Request, error) {
	query := `
		SELECT ` + overtimeColumns + ` ` + overtimeFrom + `
		WHERE o.employee_id = $1 AND o.date BETWEEN $2 AND $3
		ORDER BY o.date ASC
	`
	return r.query(ctx, query, employeeID, start, end)
}

// ExistsActive implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) ExistsActive(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM overtime_requests
			WHERE employee_id = $1 AND date = $2 AND status IN ($3, $4)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, approval.StatusPending, approval.StatusApproved).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overtime request: %w", err)
	}
	return exists, nil
}

// Review implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) Review(ctx context.Context, id string, review approval.Review) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
	`
	tag, err := q.Exec(ctx, query, id, review.Status, review.ReviewedBy, review.ReviewedAt, review.RejectionReason, approval.StatusPending)
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to review overtime request: %w", err)
	}

	o, err := r.GetByID(ctx, id)
	if err != nil {
		return overtime.Request{}, err
	}
	if tag.RowsAffected() == 0 {
		return overtime.Request{}, approval.ErrAlreadyProcessed
	}
	return o, nil
}

// CountPending implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	return countPending(ctx, GetQuerier(ctx, r.db), "overtime_requests")
}

func (r *overtimeRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overtime requests: %w", err)
	}
	defer rows.Close()

	requests := make([]overtime.Request, 0)
	for rows.Next() {
		o, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, o)
	}
	return requests, rows.Err()
}
