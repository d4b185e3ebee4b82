package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID = "01900000-0000-7000-8000-000000000001"
	leaveID    = "01900000-0000-7000-8000-0000000000aa"
)

type fakeLeaveRepo struct {
	leave.LeaveRepository
	requests map[string]leave.Request
}

func (f *fakeLeaveRepo) Create(ctx context.Context, r leave.Request) (leave.Request, error) {
	r.ID = leaveID
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeLeaveRepo) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status != approval.StatusRejected &&
			!r.EndDate.Before(start) && !r.StartDate.After(end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) Review(ctx context.Context, id string, review approval.Review) (leave.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	if r.Status != approval.StatusPending {
		return leave.Request{}, approval.ErrAlreadyProcessed
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
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != employeeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, LineUserID: "Uemp", Name: "สมชาย", IsActive: true}, nil
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

func newTestService() (*LeaveServiceImpl, *fakeLeaveRepo, *fakeNotifier) {
	repo := &fakeLeaveRepo{requests: map[string]leave.Request{}}
	notifier := &fakeNotifier{employees: map[string][]string{}}
	svc := &LeaveServiceImpl{
		LeaveRepository: repo,
		employeeRepo:    &fakeEmployeeRepo{},
		notifier:        notifier,
		now:             func() time.Time { return time.Date(2024, time.March, 11, 10, 0, 0, 0, time.UTC) },
	}
	return svc, repo, notifier
}

func TestLeaveService_CreateAndReview(t *testing.T) {
	svc, _, notifier := newTestService()
	employeeCtx := withClaims(t, map[string]string{"employee_id": employeeID, "name": "สมชาย"})

	created, err := svc.CreateRequest(employeeCtx, leave.CreateLeaveRequest{
		Type: "sick", StartDate: "2024-03-12", EndDate: "2024-03-13", Reason: "ไข้",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 2, created.DayCount)
	assert.Equal(t, "สมชาย", created.EmployeeName)
	require.Len(t, notifier.admins, 1)
	assert.Contains(t, notifier.admins[0], "ลาป่วย")

	_, err = svc.CreateRequest(employeeCtx, leave.CreateLeaveRequest{
		Type: "personal", StartDate: "2024-03-13", EndDate: "2024-03-13", Reason: "ธุระ",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	adminCtx := withClaims(t, map[string]string{"role": "admin", "name": "หัวหน้า"})
	approved, err := svc.Approve(adminCtx, approval.ReviewRequest{ID: leaveID})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "หัวหน้า", *approved.ReviewedBy)
	assert.Len(t, notifier.employees["Uemp"], 1)

	reason := "late"
	_, err = svc.Reject(adminCtx, approval.ReviewRequest{ID: leaveID, Reason: &reason})
	assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
}

func TestLeaveService_RejectRequiresReason(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Reject(withClaims(t, map[string]string{"role": "admin"}), approval.ReviewRequest{ID: leaveID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reason")
}

func TestLeaveService_CreateRequiresEmployee(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateRequest(withClaims(t, map[string]string{"role": "admin"}), leave.CreateLeaveRequest{
		Type: "sick", StartDate: "2024-03-12", EndDate: "2024-03-12", Reason: "ไข้",
	})
	assert.Error(t, err)
}
