package notification

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/swap"
	"github.com/cmlabs-hris/line-attendance-go/internal/service/report"
)

func LeaveSubmitted(employeeName string, r leave.Request) string {
	return strings.Join([]string{
		"📝 คำขอลาใหม่",
		"ชื่อ: " + employeeName,
		"ประเภท: " + r.Type.Label(),
		"วันที่: " + report.ThaiDateRange(r.StartDate, r.EndDate),
		fmt.Sprintf("จำนวน: %d วัน", r.DayCount()),
		"เหตุผล: " + r.Reason,
	}, "\n")
}

func LeaveReviewed(r leave.Request) string {
	lines := []string{
		reviewHeadline("คำขอลา", r.Status),
		"ประเภท: " + r.Type.Label(),
		"วันที่: " + report.ThaiDateRange(r.StartDate, r.EndDate),
	}
	return strings.Join(appendReason(lines, r.RejectionReason), "\n")
}

func OvertimeSubmitted(employeeName string, r overtime.Request) string {
	minutes, _ := r.Minutes()
	return strings.Join([]string{
		"⏰ คำขอทำงานล่วงเวลาใหม่",
		"ชื่อ: " + employeeName,
		"วันที่: " + report.ThaiDate(r.Date),
		fmt.Sprintf("เวลา: %s - %s (%s ชม.)", r.StartTime, r.EndTime, overtime.Hours(minutes)),
		"เหตุผล: " + r.Reason,
	}, "\n")
}

func OvertimeReviewed(r overtime.Request) string {
	lines := []string{
		reviewHeadline("คำขอทำงานล่วงเวลา", r.Status),
		"วันที่: " + report.ThaiDate(r.Date),
		fmt.Sprintf("เวลา: %s - %s", r.StartTime, r.EndTime),
	}
	return strings.Join(appendReason(lines, r.RejectionReason), "\n")
}

func SwapSubmitted(employeeName string, r swap.Request) string {
	return strings.Join([]string{
		"🔄 คำขอสลับวันทำงานใหม่",
		"ชื่อ: " + employeeName,
		"จากวันที่: " + report.ThaiDate(r.OldDate),
		"เป็นวันที่: " + report.ThaiDate(r.NewDate),
		"เหตุผล: " + r.Reason,
	}, "\n")
}

func SwapReviewed(r swap.Request) string {
	lines := []string{
		reviewHeadline("คำขอสลับวันทำงาน", r.Status),
		"จากวันที่: " + report.ThaiDate(r.OldDate),
		"เป็นวันที่: " + report.ThaiDate(r.NewDate),
	}
	return strings.Join(appendReason(lines, r.RejectionReason), "\n")
}

func reviewHeadline(subject string, status approval.Status) string {
	icon := "❌"
	if status == approval.StatusApproved {
		icon = "✅"
	}
	return fmt.Sprintf("%s %sของคุณ%s", icon, subject, status.Label())
}

func appendReason(lines []string, reason *string) []string {
	if reason == nil || *reason == "" {
		return lines
	}
	return append(lines, "เหตุผล: "+*reason)
}
