package report

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleReport() report.EmployeeReport {
	in := day(12).Add(9*time.Hour + 16*time.Minute)
	out := day(12).Add(18*time.Hour + 45*time.Minute)
	onTime := day(11).Add(8*time.Hour + 55*time.Minute)

	return report.EmployeeReport{
		Employee:  employee.Employee{ID: "e1", Name: "สมชาย ใจดี", Position: "Engineer, Backend"},
		Start:     day(1),
		End:       day(31),
		PrintedAt: day(20).Add(10 * time.Hour),
		Location:  bangkok,
		Summary: report.DerivedSummary{
			TotalDays: 14, PresentDays: 12, LateCount: 1, LateMinutesTotal: 16,
			LeaveDays: 1, AbsentDays: 1, OTMinutesTotal: 90,
		},
		Records: report.Records{
			Events: []attendance.Event{
				{ID: "a2", EmployeeID: "e1", Date: dbDate(12), CheckIn: &in, CheckOut: &out, Status: attendance.StatusCheckedOut,
					LateMinutes: 16, Location: strPtr(`Office, "HQ"`)},
				{ID: "a1", EmployeeID: "e1", Date: dbDate(11), CheckIn: &onTime, Status: attendance.StatusCheckedIn},
			},
			Leaves: []leave.Request{
				{ID: "l1", EmployeeID: "e1", Type: leave.TypeSick, StartDate: dbDate(13), EndDate: dbDate(13),
					Reason: "ไข้", Status: approval.StatusApproved, CreatedAt: day(12)},
			},
			Overtimes: []overtime.Request{
				{ID: "o1", EmployeeID: "e1", Date: dbDate(12), StartTime: "18:00", EndTime: "19:30",
					Reason: "release", Status: approval.StatusApproved},
			},
			Swaps: []swap.Request{
				{ID: "s1", EmployeeID: "e1", OldDate: dbDate(15), NewDate: dbDate(16),
					Reason: "ธุระ", Status: approval.StatusPending, CreatedAt: day(10)},
			},
		},
	}
}

func TestWriteEmployeeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmployeeCSV(&buf, sampleReport()))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "output starts with a UTF-8 BOM")

	lines := strings.Split(string(raw[3:]), "\n")
	assert.Equal(t, "รายงานการลงเวลา", lines[0])
	assert.Equal(t, "ชื่อพนักงาน,สมชาย ใจดี", lines[1])
	assert.Equal(t, `ตำแหน่ง,"Engineer, Backend"`, lines[2])
	assert.Equal(t, "ช่วงวันที่,1 มี.ค. 2024 - 31 มี.ค. 2024", lines[3])
	assert.Equal(t, "วันที่พิมพ์,20 มี.ค. 2024", lines[4])

	body := string(raw)
	assert.Contains(t, body, "มาสาย,1 ครั้ง (16 นาที)\n")
	assert.Contains(t, body, "ชั่วโมง OT,1.50 ชั่วโมง\n")
	assert.Contains(t, body, "วันที่,เวลาเข้า,เวลาออก,สถานะ,สาย (นาที),OT (ชั่วโมง),สถานที่,หมายเหตุ\n")
	assert.Contains(t, body, "ประวัติการลา\n")
	assert.Contains(t, body, "ประวัติ OT\n")
	assert.Contains(t, body, "ประวัติการสลับวัน\n")
}

func TestWriteEmployeeCSV_SummaryLines(t *testing.T) {
	rep := sampleReport()
	rep.Summary.LateCount = 4
	rep.Summary.LateMinutesTotal = 95
	rep.Summary.OTMinutesTotal = 95

	var buf bytes.Buffer
	require.NoError(t, WriteEmployeeCSV(&buf, rep))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte("\xEF\xBB\xBFรายงานการลงเวลา\n")))

	lines := strings.Split(string(raw), "\n")
	late := slices.Index(lines, "มาสาย,4 ครั้ง (95 นาที)")
	ot := slices.Index(lines, "ชั่วโมง OT,1.58 ชั่วโมง")
	require.NotEqual(t, -1, late)
	require.NotEqual(t, -1, ot)
	assert.Equal(t, late+1, ot, "OT hours follow the late line")
}

func TestWriteEmployeeCSV_AttendanceRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmployeeCSV(&buf, sampleReport()))
	body := buf.String()

	first := "11 มี.ค. 2024,08:55,-,เข้างาน,-,-,\"\",\"\"\n"
	second := "12 มี.ค. 2024,09:16,18:45,ออกงาน,16,1.50,\"Office, \"\"HQ\"\"\",\"\"\n"

	assert.Contains(t, body, first)
	assert.Contains(t, body, second)
	assert.Less(t, strings.Index(body, first), strings.Index(body, second), "rows are sorted by date")
}

func TestWriteEmployeeCSV_HistorySections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmployeeCSV(&buf, sampleReport()))
	body := buf.String()

	assert.Contains(t, body, "12 มี.ค. 2024,ลาป่วย,13 มี.ค. 2024,1,\"ไข้\",อนุมัติ\n")
	assert.Contains(t, body, "12 มี.ค. 2024,18:00-19:30,1.50,\"release\",อนุมัติ\n")
	assert.Contains(t, body, "10 มี.ค. 2024,15 มี.ค. 2024,16 มี.ค. 2024,\"ธุระ\",รออนุมัติ\n")
}

func TestWriteEmployeeCSV_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEmployeeCSV(&buf, report.EmployeeReport{
		Employee: employee.Employee{ID: "e1", Name: "A"},
		Start:    day(1),
		End:      day(1),
	})
	require.NoError(t, err)

	body := buf.String()
	assert.NotContains(t, body, "ตำแหน่ง")
	assert.Contains(t, body, "ช่วงวันที่,1 มี.ค. 2024\n")
	assert.Contains(t, body, "ชั่วโมง OT,0.00 ชั่วโมง\n")
}

func TestThaiDate(t *testing.T) {
	assert.Equal(t, "5 ม.ค. 2024", ThaiDate(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 ธ.ค. 2023", ThaiDate(time.Date(2023, time.December, 31, 23, 0, 0, 0, bangkok)))
	assert.Equal(t, "1 มี.ค. 2024 - 2 มี.ค. 2024", ThaiDateRange(day(1), day(2)))
	assert.Equal(t, "1 มี.ค. 2024", ThaiDateRange(day(1), dbDate(1)))
}
