package report

import (
	"fmt"
	"time"
)

var thaiMonths = [...]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// ThaiDate formats t as "d MMM yyyy" with Thai month abbreviations and a Gregorian year.
func ThaiDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year())
}

// ThaiDateRange collapses single-day ranges to one date.
func ThaiDateRange(start, end time.Time) string {
	if sameDay(start, end) {
		return ThaiDate(start)
	}
	return ThaiDate(start) + " - " + ThaiDate(end)
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("15:04")
}
