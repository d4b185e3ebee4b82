package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const swapColumns = `s.id, s.employee_id, s.old_date, s.new_date, s.reason, s.status,
	s.reviewed_by, s.reviewed_at, s.rejection_reason, s.created_at, s.updated_at, e.name`

const swapFrom = `FROM swap_requests s LEFT JOIN employees e ON e.id = s.employee_id`

type swapRepositoryImpl struct {
	db *database.DB
}

func NewSwapRepository(db *database.DB) swap.SwapRepository {
	return &swapRepositoryImpl{db: db}
}

func scanSwap(row pgx.Row) (swap.Request, error) {
	var s swap.Request
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.OldDate, &s.NewDate, &s.Reason, &s.Status,
		&s.ReviewedBy, &s.ReviewedAt, &s.RejectionReason, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeName,
	)
	return s, err
}

// Create implements swap.SwapRepository.
func (r *swapRepositoryImpl) Create(ctx context.Context, req swap.Request) (swap.Request, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return swap.Request{}, err
	}

	query := `
		INSERT INTO swap_requests (id, employee_id, old_date, new_date, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id, req.EmployeeID, req.OldDate, req.NewDate, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return swap.Request{}, fmt.Errorf("failed to create swap request: %w", err)
	}

	return req, nil
}

// GetByID implements swap.SwapRepository.
func (r *swapRepositoryImpl) GetByID(ctx context.Context, id string) (swap.Request, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSwap(q.QueryRow(ctx, `SELECT `+swapColumns+` `+swapFrom+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swap.Request{}, swap.ErrSwapRequestNotFound
		}
		return swap.Request{}, fmt.Errorf("failed to get swap request: %w", err)
	}
	return s, nil
}

// List implements swap.SwapRepository.
func (r *swapRepositoryImpl) List(ctx context.Context, filter swap.SwapFilter) ([]swap.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args, argIdx := requestWhere("s", filter.EmployeeID, filter.Status)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) `+swapFrom+` WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count swap requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, swapColumns, swapFrom, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	requests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListByEmployee implements swap.SwapRepository.
func (r *swapRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]swap.Request, error) {
	query := `
		SELECT ` + swapColumns + ` ` + swapFrom + `
		WHERE s.employee_id = $1
		  AND (s.old_date BETWEEN $2 AND $3 OR s.new_date BETWEEN $2 AND $3)
		ORDER BY s.old_date ASC
	`
	return r.query(ctx, query, employeeID, start, end)
}

// Review implements swap.SwapRepository.
func (r *swapRepositoryImpl) Review(ctx context.Context, id string, review approval.Review) (swap.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE swap_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
	`
	tag, err := q.Exec(ctx, query, id, review.Status, review.ReviewedBy, review.ReviewedAt, review.RejectionReason, approval.StatusPending)
	if err != nil {
		return swap.Request{}, fmt.Errorf("failed to review swap request: %w", err)
	}

	s, err := r.GetByID(ctx, id)
	if err != nil {
		return swap.Request{}, err
	}
	if tag.RowsAffected() == 0 {
		return swap.Request{}, approval.ErrAlreadyProcessed
	}
	return s, nil
}

// CountPending implements swap.SwapRepository.
func (r *swapRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	return countPending(ctx, GetQuerier(ctx, r.db), "swap_requests")
}

func (r *swapRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]swap.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap requests: %w", err)
	}
	defer rows.Close()

	requests := make([]swap.Request, 0)
	for rows.Next() {
		s, err := scanSwap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swap request: %w", err)
		}
		requests = append(requests, s)
	}
	return requests, rows.Err()
}
