package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const csvTitle = "รายงานการลงเวลา"

// WriteEmployeeCSV renders an employee report for Excel: UTF-8 with a BOM,
// a header and summary block, the attendance table, then leave, overtime and
// swap history. Location, note and reason cells are always quoted.
func WriteEmployeeCSV(w io.Writer, rep report.EmployeeReport) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := &csvWriter{w: bw}
	loc := rep.Location
	if loc == nil {
		loc = rep.Start.Location()
	}

	cw.line(csvTitle)
	cw.line("ชื่อพนักงาน", field(rep.Employee.Name))
	if rep.Employee.Position != "" {
		cw.line("ตำแหน่ง", field(rep.Employee.Position))
	}
	cw.line("ช่วงวันที่", ThaiDateRange(rep.Start, rep.End))
	cw.line("วันที่พิมพ์", ThaiDate(rep.PrintedAt.In(loc)))
	cw.line()

	s := rep.Summary
	cw.line("สรุป")
	cw.line("จำนวนวันทั้งหมด", fmt.Sprintf("%d วัน", s.TotalDays))
	cw.line("มาทำงาน", fmt.Sprintf("%d วัน", s.PresentDays))
	cw.line("ลา", fmt.Sprintf("%d วัน", s.LeaveDays))
	cw.line("ขาดงาน", fmt.Sprintf("%d วัน", s.AbsentDays))
	cw.line("มาสาย", fmt.Sprintf("%d ครั้ง (%d นาที)", s.LateCount, s.LateMinutesTotal))
	cw.line("ชั่วโมง OT", s.OTHours().StringFixed(2)+" ชั่วโมง")
	cw.line()

	cw.line("วันที่", "เวลาเข้า", "เวลาออก", "สถานะ", "สาย (นาที)", "OT (ชั่วโมง)", "สถานที่", "หมายเหตุ")
	events := make([]attendance.Event, len(rep.Events))
	copy(events, rep.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	for _, ev := range events {
		otMinutes := OTMinutesOn(rep.Overtimes, ev.Date)
		cw.line(
			ThaiDate(ev.Date),
			clock(ev.CheckIn, loc),
			clock(ev.CheckOut, loc),
			ev.Status.Label(),
			dashIfZero(strconv.Itoa(ev.LateMinutes), ev.LateMinutes),
			dashIfZero(overtime.Hours(otMinutes), otMinutes),
			quote(deref(ev.Location)),
			quote(deref(ev.Note)),
		)
	}
	cw.line()

	cw.line("ประวัติการลา")
	cw.line("วันที่ยื่น", "ประเภท", "ช่วงวันที่", "จำนวนวัน", "เหตุผล", "สถานะ")
	for _, l := range rep.Leaves {
		cw.line(
			ThaiDate(l.CreatedAt.In(loc)),
			l.Type.Label(),
			ThaiDateRange(l.StartDate, l.EndDate),
			strconv.Itoa(l.DayCount()),
			quote(l.Reason),
			l.Status.Label(),
		)
	}
	cw.line()

	cw.line("ประวัติ OT")
	cw.line("วันที่", "ช่วงเวลา", "ชั่วโมง", "เหตุผล", "สถานะ")
	for _, o := range rep.Overtimes {
		minutes, _ := o.Minutes()
		cw.line(
			ThaiDate(o.Date),
			o.StartTime+"-"+o.EndTime,
			overtime.Hours(minutes),
			quote(o.Reason),
			o.Status.Label(),
		)
	}
	cw.line()

	cw.line("ประวัติการสลับวัน")
	cw.line("วันที่ยื่น", "วันเดิม", "วันใหม่", "เหตุผล", "สถานะ")
	for _, sw := range rep.Swaps {
		cw.line(
			ThaiDate(sw.CreatedAt.In(loc)),
			ThaiDate(sw.OldDate),
			ThaiDate(sw.NewDate),
			quote(sw.Reason),
			sw.Status.Label(),
		)
	}

	if cw.err != nil {
		return fmt.Errorf("failed to write csv: %w", cw.err)
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// csvWriter writes pre-escaped cells. encoding/csv cannot force quotes on
// cells that do not need them, which the export format requires.
type csvWriter struct {
	w   io.Writer
	err error
}

func (c *csvWriter) line(cells ...string) {
	if c.err != nil {
		return
	}
	_, c.err = io.WriteString(c.w, strings.Join(cells, ",")+"\n")
}

// field quotes a cell only when it needs it.
func field(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func dashIfZero(s string, n int) string {
	if n == 0 {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
