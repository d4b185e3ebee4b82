package shift

import (
	"context"
	"sort"
	"testing"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{ calls int }

func (p *passthroughTx) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type memShiftRepo struct {
	shift.ShiftRepository
	policies map[string]shift.ShiftPolicy
	assigned map[string]int64
	nextID   int
}

func newMemShiftRepo(policies ...shift.ShiftPolicy) *memShiftRepo {
	r := &memShiftRepo{policies: map[string]shift.ShiftPolicy{}, assigned: map[string]int64{}}
	for _, p := range policies {
		r.policies[p.ID] = p
	}
	return r
}

func (r *memShiftRepo) Create(ctx context.Context, p shift.ShiftPolicy) (shift.ShiftPolicy, error) {
	r.nextID++
	p.ID = "new-" + string(rune('0'+r.nextID))
	r.policies[p.ID] = p
	return p, nil
}

func (r *memShiftRepo) GetByID(ctx context.Context, id string) (shift.ShiftPolicy, error) {
	p, ok := r.policies[id]
	if !ok {
		return shift.ShiftPolicy{}, shift.ErrShiftNotFound
	}
	return p, nil
}

func (r *memShiftRepo) List(ctx context.Context) ([]shift.ShiftPolicy, error) {
	out := make([]shift.ShiftPolicy, 0, len(r.policies))
	for _, p := range r.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memShiftRepo) Update(ctx context.Context, p shift.ShiftPolicy) (shift.ShiftPolicy, error) {
	if _, ok := r.policies[p.ID]; !ok {
		return shift.ShiftPolicy{}, shift.ErrShiftNotFound
	}
	r.policies[p.ID] = p
	return p, nil
}

func (r *memShiftRepo) Delete(ctx context.Context, id string) error {
	delete(r.policies, id)
	return nil
}

func (r *memShiftRepo) ClearDefault(ctx context.Context, keepID string) error {
	for id, p := range r.policies {
		if id != keepID {
			p.IsDefault = false
			r.policies[id] = p
		}
	}
	return nil
}

func (r *memShiftRepo) CountAssigned(ctx context.Context, id string) (int64, error) {
	return r.assigned[id], nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

var office = shift.ShiftPolicy{ID: "office", Name: "Office", CheckInHour: 9, CheckOutHour: 18, IsDefault: true}

func defaultCount(r *memShiftRepo) int {
	n := 0
	for _, p := range r.policies {
		if p.IsDefault {
			n++
		}
	}
	return n
}

func TestCreate_NewDefaultReplacesOld(t *testing.T) {
	repo := newMemShiftRepo(office)
	tx := &passthroughTx{}
	svc := NewShiftService(repo, &fakeEmployeeRepo{}, tx)

	resp, err := svc.Create(context.Background(), shift.ShiftRequest{
		Name: "Night", CheckInHour: 22, CheckOutHour: 6, CheckOutNextDay: true, IsDefault: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, "22:00", resp.CheckIn)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, defaultCount(repo))
	assert.False(t, repo.policies["office"].IsDefault)
}

func TestCreate_InvalidPolicy(t *testing.T) {
	repo := newMemShiftRepo()
	svc := NewShiftService(repo, &fakeEmployeeRepo{}, &passthroughTx{})

	_, err := svc.Create(context.Background(), shift.ShiftRequest{Name: "", CheckInHour: 25})
	require.Error(t, err)
	assert.Empty(t, repo.policies)
}

func TestUpdate_RefusesToUnsetDefault(t *testing.T) {
	repo := newMemShiftRepo(office)
	svc := NewShiftService(repo, &fakeEmployeeRepo{}, &passthroughTx{})

	_, err := svc.Update(context.Background(), shift.ShiftRequest{ID: "office", Name: "Office", CheckInHour: 8, CheckOutHour: 17})
	assert.ErrorIs(t, err, shift.ErrNoDefaultShift)
	assert.Equal(t, 9, repo.policies["office"].CheckInHour)
}

func TestDelete_Guards(t *testing.T) {
	late := shift.ShiftPolicy{ID: "late", Name: "Late", CheckInHour: 12, CheckOutHour: 21}
	spare := shift.ShiftPolicy{ID: "spare", Name: "Spare", CheckInHour: 7, CheckOutHour: 16}
	repo := newMemShiftRepo(office, late, spare)
	repo.assigned["late"] = 2
	svc := NewShiftService(repo, &fakeEmployeeRepo{}, &passthroughTx{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, "office"), shift.ErrCannotDeleteDefault)
	assert.ErrorIs(t, svc.Delete(ctx, "late"), shift.ErrShiftInUse)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), shift.ErrShiftNotFound)

	require.NoError(t, svc.Delete(ctx, "spare"))
	assert.NotContains(t, repo.policies, "spare")
}

func TestPolicyFor(t *testing.T) {
	late := shift.ShiftPolicy{ID: "late", Name: "Late", CheckInHour: 12, CheckOutHour: 21}
	lateID := "late"
	repo := newMemShiftRepo(office, late)
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {ID: "e1"},
		"e2": {ID: "e2", ShiftID: &lateID},
	}}
	svc := NewShiftService(repo, employees, &passthroughTx{})
	ctx := context.Background()

	p, err := svc.PolicyFor(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "office", p.ID)

	p, err = svc.PolicyFor(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, "late", p.ID)

	_, err = svc.PolicyFor(ctx, "nobody")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
