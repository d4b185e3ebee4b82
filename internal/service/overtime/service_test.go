package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID = "01900000-0000-7000-8000-000000000001"
	overtimeID = "01900000-0000-7000-8000-00000000000b"
)

type fakeOvertimeRepo struct {
	overtime.OvertimeRepository
	requests map[string]overtime.Request
}

func (f *fakeOvertimeRepo) Create(ctx context.Context, r overtime.Request) (overtime.Request, error) {
	r.ID = overtimeID
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeOvertimeRepo) ExistsActive(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Date.Equal(date) && r.Status != approval.StatusRejected {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOvertimeRepo) Review(ctx context.Context, id string, review approval.Review) (overtime.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return overtime.Request{}, overtime.ErrOvertimeRequestNotFound
	}
	if r.Status != approval.StatusPending {
		return overtime.Request{}, approval.ErrAlreadyProcessed
	}
	r.Status = review.Status
	r.ReviewedBy = &review.ReviewedBy
	r.ReviewedAt = &review.ReviewedAt
	r.RejectionReason = review.RejectionReason
	f.requests[id] = r
	return r, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	inactive bool
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != employeeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, LineUserID: "Uemp", Name: "สมหญิง", IsActive: !f.inactive}, nil
}

type fakeNotifier struct {
	admins    []string
	employees map[string][]string
}

func (f *fakeNotifier) NotifyAdmins(text string) { f.admins = append(f.admins, text) }
func (f *fakeNotifier) NotifyEmployee(lineUserID, text string) {
	f.employees[lineUserID] = append(f.employees[lineUserID], text)
}
func (f *fakeNotifier) SendToAdmins(ctx context.Context, text string) error { return nil }
func (f *fakeNotifier) Stop()                                               {}

func withClaims(t *testing.T, claims map[string]string) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	for k, v := range claims {
		require.NoError(t, tok.Set(k, v))
	}
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService(employees *fakeEmployeeRepo) (*OvertimeServiceImpl, *fakeOvertimeRepo, *fakeNotifier) {
	repo := &fakeOvertimeRepo{requests: map[string]overtime.Request{}}
	notifier := &fakeNotifier{employees: map[string][]string{}}
	svc := &OvertimeServiceImpl{
		OvertimeRepository: repo,
		employeeRepo:       employees,
		notifier:           notifier,
		now:                func() time.Time { return time.Date(2024, time.March, 13, 8, 0, 0, 0, time.UTC) },
	}
	return svc, repo, notifier
}

func TestOvertimeService_OvernightRequest(t *testing.T) {
	svc, _, notifier := newTestService(&fakeEmployeeRepo{})
	ctx := withClaims(t, map[string]string{"employee_id": employeeID})

	created, err := svc.CreateRequest(ctx, overtime.CreateOvertimeRequest{
		Date: "2024-03-12", StartTime: "22:00", EndTime: "01:00", Reason: "ปิดงบ",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "3.00", created.Hours)
	require.Len(t, notifier.admins, 1)
	assert.Contains(t, notifier.admins[0], "สมหญิง")

	_, err = svc.CreateRequest(ctx, overtime.CreateOvertimeRequest{
		Date: "2024-03-12", StartTime: "18:00", EndTime: "19:00", Reason: "อีกรอบ",
	})
	assert.ErrorIs(t, err, overtime.ErrDuplicateOvertime)
}

func TestOvertimeService_InactiveEmployee(t *testing.T) {
	svc, repo, _ := newTestService(&fakeEmployeeRepo{inactive: true})

	_, err := svc.CreateRequest(withClaims(t, map[string]string{"employee_id": employeeID}), overtime.CreateOvertimeRequest{
		Date: "2024-03-12", StartTime: "18:00", EndTime: "20:00", Reason: "งานด่วน",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
	assert.Empty(t, repo.requests)
}

func TestOvertimeService_RejectThenApprove(t *testing.T) {
	svc, repo, notifier := newTestService(&fakeEmployeeRepo{})
	repo.requests[overtimeID] = overtime.Request{
		ID: overtimeID, EmployeeID: employeeID, Date: time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "18:00", EndTime: "20:00", Status: approval.StatusPending,
	}
	adminCtx := withClaims(t, map[string]string{"role": "admin", "name": "หัวหน้า"})

	reason := "ไม่ได้แจ้งล่วงหน้า"
	rejected, err := svc.Reject(adminCtx, approval.ReviewRequest{ID: overtimeID, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)
	require.Len(t, notifier.employees["Uemp"], 1)
	assert.Contains(t, notifier.employees["Uemp"][0], reason)

	_, err = svc.Approve(adminCtx, approval.ReviewRequest{ID: overtimeID})
	assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
}
