package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (r *recordingNotifier) PushText(ctx context.Context, to string, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Message{To: to, Text: text})
	return r.err
}

func (r *recordingNotifier) messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

func TestService_StopFlushesQueue(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewNotificationService(rec, nil, Config{AdminGroupID: "Cadmin", NotifyEmployees: true, WorkerCount: 1})

	svc.NotifyAdmins("hello admins")
	svc.NotifyEmployee("Uemp", "hello employee")
	svc.Stop()

	assert.ElementsMatch(t, []Message{
		{To: "Cadmin", Text: "hello admins"},
		{To: "Uemp", Text: "hello employee"},
	}, rec.messages())
}

func TestService_NotifyAfterStopPushesInline(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewNotificationService(rec, nil, Config{AdminGroupID: "Cadmin", WorkerCount: 1})
	svc.Stop()

	svc.NotifyAdmins("late arrival")

	assert.Equal(t, []Message{{To: "Cadmin", Text: "late arrival"}}, rec.messages())
}

func TestService_EmployeePushesDisabled(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewNotificationService(rec, nil, Config{AdminGroupID: "Cadmin"})

	svc.NotifyEmployee("Uemp", "hello employee")
	svc.Stop()

	assert.Empty(t, rec.messages())
}

func TestService_NoAdminGroupIsSkipped(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewNotificationService(rec, nil, Config{})

	svc.NotifyAdmins("nobody listens")
	svc.Stop()

	assert.Empty(t, rec.messages())
}

func TestService_SendToAdminsReturnsError(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("line down")}
	svc := NewNotificationService(rec, nil, Config{AdminGroupID: "Cadmin"})
	defer svc.Stop()

	err := svc.SendToAdmins(context.Background(), "daily")
	assert.EqualError(t, err, "line down")
}

func TestMessages(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }

	l := leave.Request{Type: leave.TypeSick, StartDate: day(12), EndDate: day(13), Reason: "ไข้", Status: approval.StatusPending}
	msg := LeaveSubmitted("สมชาย", l)
	assert.Contains(t, msg, "ชื่อ: สมชาย")
	assert.Contains(t, msg, "ลาป่วย")
	assert.Contains(t, msg, "จำนวน: 2 วัน")

	reason := "ช่วงปิดงบ"
	l.Status = approval.StatusRejected
	l.RejectionReason = &reason
	msg = LeaveReviewed(l)
	assert.Contains(t, msg, "❌")
	assert.Contains(t, msg, "ไม่อนุมัติ")
	assert.Contains(t, msg, "เหตุผล: ช่วงปิดงบ")

	ot := overtime.Request{Date: day(12), StartTime: "18:00", EndTime: "20:30", Reason: "deploy", Status: approval.StatusApproved}
	require.Contains(t, OvertimeSubmitted("สมชาย", ot), "(2.50 ชม.)")
	assert.Contains(t, OvertimeReviewed(ot), "✅")
}
