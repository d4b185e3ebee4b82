package swap

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "01900000-0000-7000-8000-000000000001"

type fakeSwapRepo struct {
	swap.SwapRepository
	created []swap.Request
	filter  swap.SwapFilter
}

func (f *fakeSwapRepo) Create(ctx context.Context, r swap.Request) (swap.Request, error) {
	r.ID = "01900000-0000-7000-8000-0000000000cc"
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeSwapRepo) List(ctx context.Context, filter swap.SwapFilter) ([]swap.Request, int64, error) {
	f.filter = filter
	return f.created, 45, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != employeeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, LineUserID: "Uemp", Name: "มานี", IsActive: true}, nil
}

type fakeNotifier struct {
	admins []string
}

func (f *fakeNotifier) NotifyAdmins(text string)                            { f.admins = append(f.admins, text) }
func (f *fakeNotifier) NotifyEmployee(lineUserID, text string)              {}
func (f *fakeNotifier) SendToAdmins(ctx context.Context, text string) error { return nil }
func (f *fakeNotifier) Stop()                                               {}

func employeeContext(t *testing.T) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("employee_id", employeeID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService() (*SwapServiceImpl, *fakeSwapRepo, *fakeNotifier) {
	repo := &fakeSwapRepo{}
	notifier := &fakeNotifier{}
	svc := &SwapServiceImpl{
		SwapRepository: repo,
		employeeRepo:   &fakeEmployeeRepo{},
		notifier:       notifier,
		now:            time.Now,
	}
	return svc, repo, notifier
}

func TestSwapService_CreateRequest(t *testing.T) {
	svc, repo, notifier := newTestService()

	resp, err := svc.CreateRequest(employeeContext(t), swap.CreateSwapRequest{
		OldDate: "2024-03-15", NewDate: "2024-03-16", Reason: "งานบุญ",
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", resp.OldDate)
	assert.Equal(t, "2024-03-16", resp.NewDate)
	assert.Equal(t, "มานี", resp.EmployeeName)
	require.Len(t, repo.created, 1)
	assert.Equal(t, approval.StatusPending, repo.created[0].Status)
	require.Len(t, notifier.admins, 1)
	assert.Contains(t, notifier.admins[0], "มานี")
}

func TestSwapService_CreateRejectsSameDate(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.CreateRequest(employeeContext(t), swap.CreateSwapRequest{
		OldDate: "2024-03-15", NewDate: "2024-03-15", Reason: "ไม่มี",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "new_date")
	assert.Empty(t, repo.created)
}

func TestSwapService_ListMineScopesToCaller(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.ListMine(employeeContext(t), swap.SwapFilter{Limit: 20})
	require.NoError(t, err)

	require.NotNil(t, repo.filter.EmployeeID)
	assert.Equal(t, employeeID, *repo.filter.EmployeeID)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Empty(t, resp.Requests)
}
