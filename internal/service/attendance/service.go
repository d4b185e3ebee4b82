package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/line-attendance-go/internal/service/file"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	shiftService shift.ShiftService
	fileService  file.FileService
	site         utils.Site
	loc          *time.Location
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	shiftService shift.ShiftService,
	fileService file.FileService,
	site utils.Site,
	loc *time.Location,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		shiftService:         shiftService,
		fileService:          fileService,
		site:                 site,
		loc:                  loc,
		metrics:              m,
		now:                  time.Now,
	}
}

// timePtrToString formats t as wall-clock time in loc.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	format := t.In(loc).Format("2006-01-02 15:04:05")
	return &format
}

func (a *AttendanceServiceImpl) toResponse(ev attendance.Event) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:               ev.ID,
		EmployeeID:       ev.EmployeeID,
		Date:             ev.Date.Format("2006-01-02"),
		CheckInTime:      timePtrToString(ev.CheckIn, a.loc),
		CheckOutTime:     timePtrToString(ev.CheckOut, a.loc),
		Status:           string(ev.Status),
		StatusLabel:      ev.Status.Label(),
		IsLate:           ev.IsLate(),
		LateMinutes:      ev.LateMinutes,
		Location:         ev.Location,
		Latitude:         ev.Latitude,
		Longitude:        ev.Longitude,
		DistanceFromSite: ev.DistanceFromSite,
		PhotoURL:         ev.PhotoURL,
		Note:             ev.Note,
		CreatedAt:        ev.CreatedAt.In(a.loc).Format("2006-01-02 15:04:05"),
		UpdatedAt:        ev.UpdatedAt.In(a.loc).Format("2006-01-02 15:04:05"),
	}
	if ev.EmployeeName != nil {
		resp.EmployeeName = *ev.EmployeeName
	}
	return resp
}

// activeEmployee loads the caller behind the access token.
func (a *AttendanceServiceImpl) activeEmployee(ctx context.Context) (employee.Employee, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

// checkSite returns the distance from the site, or nil when no coordinates were sent.
func (a *AttendanceServiceImpl) checkSite(lat, lng *float64, required bool) (*float64, error) {
	if lat == nil || lng == nil {
		if required && a.site.Enabled() {
			return nil, attendance.ErrLocationRequired
		}
		return nil, nil
	}

	distance, ok := a.site.Distance(*lat, *lng)
	if !ok {
		return nil, fmt.Errorf("%.0fm from site: %w", distance, attendance.ErrOutsideAllowedRadius)
	}
	distance = math.Round(distance*10) / 10
	return &distance, nil
}

// currentEvent is today's record, or a session still open from the previous day.
// Older open sessions are abandoned check-ins and are never closed by today's actions.
func (a *AttendanceServiceImpl) currentEvent(ctx context.Context, employeeID string, today time.Time) (*attendance.Event, error) {
	ev, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, err
	}
	if ev != nil {
		return ev, nil
	}

	open, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			return nil, nil
		}
		return nil, err
	}
	if dateIn(open.Date, a.loc).Before(today.AddDate(0, 0, -1)) {
		slog.Warn("ignoring stale open attendance", "employee_id", employeeID, "attendance_id", open.ID, "date", open.Date.Format("2006-01-02"))
		return nil, nil
	}
	return &open, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.activeEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.loc)
	today := dateOf(nowLocal, a.loc)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	policy, err := a.shiftService.PolicyFor(ctx, emp.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	distance, err := a.checkSite(req.Latitude, req.Longitude, true)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.StatusCheckedIn
	if policy.IsLate(nowLocal) {
		status = attendance.StatusLate
	}

	ev := attendance.Event{
		EmployeeID:       emp.ID,
		Date:             today,
		CheckIn:          &nowLocal,
		Status:           status,
		LateMinutes:      policy.LateMinutes(nowLocal),
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		DistanceFromSite: distance,
		Note:             req.Note,
	}

	if req.File != nil && req.FileHeader != nil {
		photoURL, err := a.fileService.UploadAttendancePhoto(ctx, emp.ID, today, req.File, req.FileHeader.Filename, "check_in")
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		ev.PhotoURL = &photoURL
	}

	created, err := a.AttendanceRepository.Create(ctx, ev)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceExists) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	created.EmployeeName = &emp.Name

	a.metrics.CheckIn(string(status))
	slog.Info("employee checked in",
		"employee_id", emp.ID, "shift", policy.Name, "status", status, "late_minutes", created.LateMinutes)

	return a.toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	emp, err := a.activeEmployee(ctx)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	nowLocal := a.now().In(a.loc)

	ev, err := a.currentEvent(ctx, emp.ID, dateOf(nowLocal, a.loc))
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to load current attendance: %w", err)
	}
	switch {
	case ev == nil || ev.CheckIn == nil:
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	case ev.CheckOut != nil:
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	case !ev.Status.CanTransitionTo(attendance.StatusCheckedOut):
		return attendance.CheckOutResponse{}, attendance.ErrInvalidTransition
	}

	if _, err := a.checkSite(req.Latitude, req.Longitude, false); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	policy, err := a.shiftService.PolicyFor(ctx, emp.ID)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	if req.File != nil && req.FileHeader != nil {
		photoURL, err := a.fileService.UploadAttendancePhoto(ctx, emp.ID, ev.Date, req.File, req.FileHeader.Filename, "check_out")
		if err != nil {
			return attendance.CheckOutResponse{}, err
		}
		if ev.PhotoURL == nil {
			ev.PhotoURL = &photoURL
		}
	}

	ev.CheckOut = &nowLocal
	ev.Status = attendance.StatusCheckedOut
	if req.Note != nil {
		ev.Note = req.Note
	}

	if err := a.AttendanceRepository.Update(ctx, *ev); err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	workday := dateIn(ev.Date, a.loc)
	otMinutes := policy.OTMinutesForWorkday(workday, nowLocal)
	eligible := policy.IsEligibleForOTOnWorkday(workday, nowLocal)

	slog.Info("employee checked out", "employee_id", emp.ID, "ot_minutes", otMinutes, "ot_eligible", eligible)

	return attendance.CheckOutResponse{
		AttendanceResponse: a.toResponse(*ev),
		OTMinutes:          otMinutes,
		OTEligible:         eligible,
	}, nil
}

// ChangeStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ChangeStatus(ctx context.Context, req attendance.ChangeStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	next, _ := attendance.ParseStatus(req.Status)

	emp, err := a.activeEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ev, err := a.currentEvent(ctx, emp.ID, dateOf(a.now(), a.loc))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load current attendance: %w", err)
	}
	if ev == nil || ev.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if ev.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !ev.Status.CanTransitionTo(next) {
		return attendance.AttendanceResponse{}, fmt.Errorf("%s to %s: %w", ev.Status, next, attendance.ErrInvalidTransition)
	}

	previous := ev.Status
	ev.Status = next
	if req.Note != nil {
		ev.Note = req.Note
	}

	if err := a.AttendanceRepository.Update(ctx, *ev); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to change status: %w", err)
	}

	slog.Info("attendance status changed", "employee_id", emp.ID, "from", previous, "to", next)
	return a.toResponse(*ev), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	emp, err := a.activeEmployee(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	today := dateOf(a.now(), a.loc)

	policy, err := a.shiftService.PolicyFor(ctx, emp.ID)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	ev, err := a.currentEvent(ctx, emp.ID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to load current attendance: %w", err)
	}

	resp := attendance.TodayResponse{
		Date:         today.Format("2006-01-02"),
		ShiftName:    policy.Name,
		CheckInTime:  fmt.Sprintf("%02d:%02d", policy.CheckInHour, policy.CheckInMinute),
		CheckOutTime: fmt.Sprintf("%02d:%02d", policy.CheckOutHour, policy.CheckOutMinute),
		CanCheckIn:   ev == nil,
		NextStatuses: []string{},
	}
	if ev == nil {
		return resp, nil
	}

	r := a.toResponse(*ev)
	resp.Attendance = &r
	if ev.CheckIn == nil || ev.CheckOut != nil {
		return resp, nil
	}

	resp.CanCheckOut = ev.Status.CanTransitionTo(attendance.StatusCheckedOut)
	for _, st := range attendance.Statuses {
		if st != attendance.StatusCheckedOut && ev.Status.CanTransitionTo(st) {
			resp.NextStatuses = append(resp.NextStatuses, string(st))
		}
	}
	return resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return a.ListAttendance(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	events, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, a.toResponse(ev))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	showing := "0 of 0"
	if total > 0 {
		start := (filter.Page-1)*filter.Limit + 1
		end := start + len(responses) - 1
		showing = fmt.Sprintf("%d-%d of %d", start, end, total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	ev, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return a.toResponse(ev), nil
}

// CreateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	parsed, _ := validator.IsValidDate(req.Date)
	date := dateIn(parsed, a.loc)

	ev := attendance.Event{
		EmployeeID:  emp.ID,
		Date:        date,
		Status:      attendance.Status(req.Status),
		LateMinutes: req.LateMinutes,
		Location:    req.Location,
		Note:        req.Note,
	}
	ev.CheckIn = clockOn(date, req.CheckInTime)
	ev.CheckOut = clockAfter(date, ev.CheckIn, req.CheckOutTime)

	created, err := a.AttendanceRepository.Create(ctx, ev)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	created.EmployeeName = &emp.Name

	slog.Info("attendance created manually", "attendance_id", created.ID, "employee_id", emp.ID, "date", req.Date)
	return a.toResponse(created), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ev, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := dateIn(ev.Date, a.loc)
	if req.CheckInTime != nil {
		ev.CheckIn = clockOn(date, req.CheckInTime)
	}
	if req.CheckOutTime != nil {
		ev.CheckOut = clockAfter(date, ev.CheckIn, req.CheckOutTime)
	}
	if req.Status != nil {
		ev.Status = attendance.Status(*req.Status)
	}
	if req.LateMinutes != nil {
		ev.LateMinutes = *req.LateMinutes
	}
	if req.Location != nil {
		ev.Location = req.Location
	}
	if req.Note != nil {
		ev.Note = req.Note
	}

	if err := a.AttendanceRepository.Update(ctx, ev); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	slog.Info("attendance updated", "attendance_id", ev.ID, "employee_id", ev.EmployeeID)
	return a.toResponse(ev), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if _, err := a.AttendanceRepository.GetByID(ctx, id); err != nil {
		return err
	}

	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	slog.Info("attendance deleted", "attendance_id", id)
	return nil
}

// dateOf is midnight of the day t falls on in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dateIn keeps t's calendar date and moves it to midnight in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// clockOn places an HH:mm clock on date.
func clockOn(date time.Time, clock *string) *time.Time {
	if clock == nil {
		return nil
	}
	h, m, ok := validator.IsValidClock(*clock)
	if !ok {
		return nil
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
	return &t
}

// clockAfter places a check-out clock on date, rolling to the next day when it
// would precede the check-in.
func clockAfter(date time.Time, checkIn *time.Time, clock *string) *time.Time {
	t := clockOn(date, clock)
	if t == nil || checkIn == nil || t.After(*checkIn) {
		return t
	}
	next := t.AddDate(0, 0, 1)
	return &next
}
