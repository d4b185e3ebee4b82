package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date, lr.reason, lr.status,
	lr.reviewed_by, lr.reviewed_at, lr.rejection_reason, lr.created_at, lr.updated_at, e.name`

const leaveFrom = `FROM leave_requests lr LEFT JOIN employees e ON e.id = lr.employee_id`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeave(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.Reason, &lr.Status,
		&lr.ReviewedBy, &lr.ReviewedAt, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt, &lr.EmployeeName,
	)
	return lr, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Request{}, err
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, type, start_date, end_date, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id, req.EmployeeID, req.Type, req.StartDate, req.EndDate, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` `+leaveFrom+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args, argIdx := requestWhere("lr", filter.EmployeeID, filter.Status)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) `+leaveFrom+` WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveColumns, leaveFrom, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	requests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	query := `
		SELECT ` + leaveColumns + ` ` + leaveFrom + `
		WHERE lr.employee_id = $1 AND lr.start_date <= $3 AND lr.end_date >= $2
		ORDER BY lr.start_date ASC
	`
	return r.query(ctx, query, employeeID, start, end)
}

// HasOverlap implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND status IN ($4, $5)
			  AND start_date <= $3 AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, start, end, approval.StatusPending, approval.StatusApproved).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// Review implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Review(ctx context.Context, id string, review approval.Review) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
	`
	tag, err := q.Exec(ctx, query, id, review.Status, review.ReviewedBy, review.ReviewedAt, review.RejectionReason, approval.StatusPending)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to review leave request: %w", err)
	}

	lr, err := r.GetByID(ctx, id)
	if err != nil {
		return leave.Request{}, err
	}
	if tag.RowsAffected() == 0 {
		return leave.Request{}, approval.ErrAlreadyProcessed
	}
	return lr, nil
}

// CountPending implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	return countPending(ctx, GetQuerier(ctx, r.db), "leave_requests")
}

func (r *leaveRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		lr, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// requestWhere builds the filter shared by the request tables.
func requestWhere(alias string, employeeID, status *string) (string, []interface{}, int) {
	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if employeeID != nil && *employeeID != "" {
		where += fmt.Sprintf(" AND %s.employee_id = $%d", alias, argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if status != nil && *status != "" {
		where += fmt.Sprintf(" AND %s.status = $%d", alias, argIdx)
		args = append(args, *status)
		argIdx++
	}
	return where, args, argIdx
}

// table is always a constant from this package.
func countPending(ctx context.Context, q database.Querier, table string) (int64, error) {
	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+` WHERE status = $1`, approval.StatusPending).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending %s: %w", table, err)
	}
	return count, nil
}
