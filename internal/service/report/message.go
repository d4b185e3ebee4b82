package report

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
)

// DailyMessage renders the daily overview as a LINE text message for admins.
func DailyMessage(o report.DailyOverview) string {
	var b strings.Builder

	fmt.Fprintf(&b, "รายงานการลงเวลาประจำวันที่ %s\n", ThaiDate(o.Date))
	fmt.Fprintf(&b, "พนักงานทั้งหมด: %d คน\n", o.Total)
	fmt.Fprintf(&b, "มาทำงาน: %d คน (มาสาย %d คน)\n", o.Present, o.Late)
	fmt.Fprintf(&b, "ลา: %d คน\n", o.Leave)
	fmt.Fprintf(&b, "ขาดงาน: %d คน", o.Absent)

	var late, absent []string
	for _, r := range o.Rows {
		switch r.Status {
		case report.DayPresent:
			if r.Late {
				late = append(late, fmt.Sprintf("- %s (%d นาที)", r.EmployeeName, r.LateMinutes))
			}
		case report.DayAbsent:
			absent = append(absent, "- "+r.EmployeeName)
		case report.DayLeave, report.DayError:
		}
	}

	if len(late) > 0 {
		b.WriteString("\n\nมาสาย:\n" + strings.Join(late, "\n"))
	}
	if len(absent) > 0 {
		b.WriteString("\n\nขาดงาน:\n" + strings.Join(absent, "\n"))
	}
	if o.Errors > 0 {
		fmt.Fprintf(&b, "\n\nดึงข้อมูลไม่สำเร็จ %d คน", o.Errors)
	}

	return b.String()
}
