package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status, a.late_minutes,
	a.location, a.latitude, a.longitude, a.distance_from_site, a.photo_url, a.note,
	a.created_at, a.updated_at, e.name`

const attendanceFrom = `FROM attendances a LEFT JOIN employees e ON e.id = a.employee_id`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	err := row.Scan(
		&ev.ID, &ev.EmployeeID, &ev.Date, &ev.CheckIn, &ev.CheckOut, &ev.Status, &ev.LateMinutes,
		&ev.Location, &ev.Latitude, &ev.Longitude, &ev.DistanceFromSite, &ev.PhotoURL, &ev.Note,
		&ev.CreatedAt, &ev.UpdatedAt, &ev.EmployeeName,
	)
	return ev, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, ev attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.Event{}, err
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in, check_out, status, late_minutes,
			location, latitude, longitude, distance_from_site, photo_url, note,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id, ev.EmployeeID, ev.Date, ev.CheckIn, ev.CheckOut, ev.Status, ev.LateMinutes,
		ev.Location, ev.Latitude, ev.Longitude, ev.DistanceFromSite, ev.PhotoURL, ev.Note,
	).Scan(&ev.ID, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "attendances_employee_id_date_key") {
			return attendance.Event{}, attendance.ErrAttendanceExists
		}
		return attendance.Event{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return ev, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	ev, err := scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+` `+attendanceFrom+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return ev, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` ` + attendanceFrom + ` WHERE a.employee_id = $1 AND a.date = $2 LIMIT 1`

	ev, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &ev, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + ` ` + attendanceFrom + `
		WHERE a.employee_id = $1
		  AND a.check_in IS NOT NULL
		  AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1
	`

	ev, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrNotCheckedIn
		}
		return attendance.Event{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return ev, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, ev attendance.Event) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3, status = $4, late_minutes = $5,
			location = $6, latitude = $7, longitude = $8, distance_from_site = $9,
			photo_url = $10, note = $11, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		ev.ID, ev.CheckIn, ev.CheckOut, ev.Status, ev.LateMinutes,
		ev.Location, ev.Latitude, ev.Longitude, ev.DistanceFromSite,
		ev.PhotoURL, ev.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) `+attendanceFrom+` WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Build ORDER BY
	orderByField := "a.date"
	switch filter.SortBy {
	case "check_in_time":
		orderByField = "a.check_in"
	case "check_out_time":
		orderByField = "a.check_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE %s
		ORDER BY %s %s, e.name ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, attendanceFrom, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	args = append(args, limit, offset(filter.Page, limit))

	events, err := a.query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Event, error) {
	query := `
		SELECT ` + attendanceColumns + ` ` + attendanceFrom + `
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date ASC
	`
	return a.query(ctx, query, employeeID, start, end)
}

func (a *attendanceRepository) query(ctx context.Context, query string, args ...interface{}) ([]attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	events := make([]attendance.Event, 0)
	for rows.Next() {
		ev, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
