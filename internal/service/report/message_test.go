package report

import (
	"testing"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
)

func TestDailyMessage(t *testing.T) {
	o := report.DailyOverview{
		Date: day(12), Total: 4, Present: 2, Late: 1, Leave: 1, Absent: 1,
		Rows: []report.EmployeeDay{
			{EmployeeName: "A", Status: report.DayPresent},
			{EmployeeName: "B", Status: report.DayPresent, Late: true, LateMinutes: 16},
			{EmployeeName: "C", Status: report.DayLeave},
			{EmployeeName: "D", Status: report.DayAbsent},
		},
	}

	want := "รายงานการลงเวลาประจำวันที่ 12 มี.ค. 2024\n" +
		"พนักงานทั้งหมด: 4 คน\n" +
		"มาทำงาน: 2 คน (มาสาย 1 คน)\n" +
		"ลา: 1 คน\n" +
		"ขาดงาน: 1 คน\n\n" +
		"มาสาย:\n- B (16 นาที)\n\n" +
		"ขาดงาน:\n- D"
	assert.Equal(t, want, DailyMessage(o))
}

func TestDailyMessage_MentionsFailedFetches(t *testing.T) {
	o := report.DailyOverview{Date: day(12), Total: 1, Absent: 1, Errors: 1,
		Rows: []report.EmployeeDay{{EmployeeName: "E", Status: report.DayError}}}

	msg := DailyMessage(o)
	assert.Contains(t, msg, "ดึงข้อมูลไม่สำเร็จ 1 คน")
	assert.NotContains(t, msg, "- E")
}
