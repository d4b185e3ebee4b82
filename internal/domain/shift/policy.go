package shift

import "time"

// The evaluator methods below are pure. Every boundary is rebuilt on the
// calendar date of the timestamp passed in, in that timestamp's location, so
// callers convert to the organisation time zone first.

// ScheduledCheckIn returns the un-extended check-in boundary on t's date.
func (p ShiftPolicy) ScheduledCheckIn(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, p.CheckInHour, p.CheckInMinute, 0, 0, t.Location())
}

// GraceDeadline is the scheduled check-in plus the grace period.
func (p ShiftPolicy) GraceDeadline(t time.Time) time.Time {
	return p.ScheduledCheckIn(t).Add(time.Duration(p.LateGracePeriodMinutes) * time.Minute)
}

// IsLate reports whether checkIn is strictly after the grace deadline.
// Arriving exactly on the deadline is on time.
func (p ShiftPolicy) IsLate(checkIn time.Time) bool {
	return checkIn.After(p.GraceDeadline(checkIn))
}

// LateMinutes counts whole minutes from the un-extended check-in time, not from
// the end of the grace period: grace forgives the flag, not the minutes.
// Returns 0 when the check-in is within grace.
func (p ShiftPolicy) LateMinutes(checkIn time.Time) int {
	if !p.IsLate(checkIn) {
		return 0
	}
	return floorMinutes(checkIn.Sub(p.ScheduledCheckIn(checkIn)))
}

// ScheduledCheckOutOn returns the check-out boundary on t's own date.
func (p ShiftPolicy) ScheduledCheckOutOn(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, p.CheckOutHour, p.CheckOutMinute, 0, 0, t.Location())
}

// OTMinutes counts whole minutes worked past the check-out boundary on
// checkOut's own date. Overnight shifts need OTMinutesForWorkday.
func (p ShiftPolicy) OTMinutes(checkOut time.Time) int {
	return otMinutesAfter(checkOut, p.ScheduledCheckOutOn(checkOut))
}

// IsEligibleForOT reports whether checkOut is past the boundary by at least MinOTMinutes.
func (p ShiftPolicy) IsEligibleForOT(checkOut time.Time) bool {
	boundary := p.ScheduledCheckOutOn(checkOut)
	if !checkOut.After(boundary) {
		return false
	}
	return otMinutesAfter(checkOut, boundary) >= p.MinOTMinutes
}

// ScheduledCheckOut returns the check-out boundary for a work day, rolling over
// to the next day for overnight shifts. The result is in workday's location.
func (p ShiftPolicy) ScheduledCheckOut(workday time.Time) time.Time {
	boundary := p.ScheduledCheckOutOn(workday)
	if p.CheckOutNextDay {
		boundary = boundary.AddDate(0, 0, 1)
	}
	return boundary
}

// OTMinutesForWorkday is OTMinutes anchored on the work day instead of the
// check-out's own date, so check-outs after midnight are measured correctly.
func (p ShiftPolicy) OTMinutesForWorkday(workday, checkOut time.Time) int {
	return otMinutesAfter(checkOut, p.ScheduledCheckOut(workday))
}

// IsEligibleForOTOnWorkday is IsEligibleForOT anchored on the work day.
func (p ShiftPolicy) IsEligibleForOTOnWorkday(workday, checkOut time.Time) bool {
	boundary := p.ScheduledCheckOut(workday)
	if !checkOut.After(boundary) {
		return false
	}
	return otMinutesAfter(checkOut, boundary) >= p.MinOTMinutes
}

func otMinutesAfter(checkOut, boundary time.Time) int {
	if !checkOut.After(boundary) {
		return 0
	}
	return floorMinutes(checkOut.Sub(boundary))
}

// floorMinutes truncates the millisecond difference to whole minutes.
func floorMinutes(d time.Duration) int {
	return int(d.Milliseconds() / 60000)
}
