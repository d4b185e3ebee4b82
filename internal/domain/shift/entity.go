package shift

import (
	"time"
)

// ShiftPolicy holds the time rules an employee is measured against.
type ShiftPolicy struct {
	ID                     string
	Name                   string
	CheckInHour            int
	CheckInMinute          int
	CheckOutHour           int
	CheckOutMinute         int
	LateGracePeriodMinutes int
	MinOTMinutes           int
	IsDefault              bool

	// CheckOutNextDay marks overnight shifts whose scheduled check-out is on the day after the work day.
	CheckOutNextDay bool

	// WorkDays lists ISO weekdays (1=Monday, ..., 7=Sunday). Empty means every day.
	WorkDays []int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWorkDay reports whether the policy schedules work on the given date.
func (p ShiftPolicy) IsWorkDay(date time.Time) bool {
	if len(p.WorkDays) == 0 {
		return true
	}
	day := isoWeekday(date)
	for _, d := range p.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
