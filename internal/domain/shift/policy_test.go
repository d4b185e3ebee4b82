package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bangkok = time.FixedZone("ICT", 7*60*60)

func officePolicy() ShiftPolicy {
	return ShiftPolicy{
		Name:                   "Office",
		CheckInHour:            9,
		CheckInMinute:          0,
		CheckOutHour:           18,
		CheckOutMinute:         0,
		LateGracePeriodMinutes: 1,
		MinOTMinutes:           30,
	}
}

func at(hour, min, sec int) time.Time {
	return time.Date(2024, time.March, 12, hour, min, sec, 0, bangkok)
}

func TestIsLate_OnScheduledTimeIsNotLate(t *testing.T) {
	for _, grace := range []int{0, 1, 5, 15} {
		p := officePolicy()
		p.LateGracePeriodMinutes = grace
		assert.False(t, p.IsLate(at(9, 0, 0)), "grace=%d", grace)
	}
}

func TestIsLate_GraceBoundaryIsInclusive(t *testing.T) {
	for _, grace := range []int{0, 1, 10} {
		p := officePolicy()
		p.LateGracePeriodMinutes = grace

		boundary := at(9, 0, 0).Add(time.Duration(grace) * time.Minute)
		assert.False(t, p.IsLate(boundary), "grace=%d at boundary", grace)
		assert.True(t, p.IsLate(boundary.Add(time.Minute)), "grace=%d one minute after", grace)
		assert.True(t, p.IsLate(boundary.Add(time.Millisecond)), "grace=%d one ms after", grace)
	}
}

func TestLateMinutes_MeasuredFromScheduledTime(t *testing.T) {
	for _, grace := range []int{1, 5, 15} {
		p := officePolicy()
		p.LateGracePeriodMinutes = grace

		checkIn := at(9, 0, 0).Add(time.Duration(grace+1) * time.Minute)
		assert.Equal(t, grace+1, p.LateMinutes(checkIn), "grace=%d", grace)
	}
}

func TestLateMinutes_ConcreteScenario(t *testing.T) {
	p := officePolicy()

	cases := []struct {
		name        string
		checkIn     time.Time
		wantLate    bool
		wantMinutes int
	}{
		{"early", at(8, 45, 0), false, 0},
		{"on time", at(9, 0, 0), false, 0},
		{"end of grace", at(9, 1, 0), false, 0},
		{"one second past grace", at(9, 1, 1), true, 1},
		{"sixteen minutes", at(9, 16, 0), true, 16},
		{"just under seventeen", at(9, 16, 59), true, 16},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantLate, p.IsLate(tc.checkIn))
			assert.Equal(t, tc.wantMinutes, p.LateMinutes(tc.checkIn))
		})
	}
}

func TestLateMinutes_ZeroGraceSubMinute(t *testing.T) {
	p := officePolicy()
	p.LateGracePeriodMinutes = 0

	assert.True(t, p.IsLate(at(9, 0, 30)))
	assert.Equal(t, 0, p.LateMinutes(at(9, 0, 30)))
}

func TestOTMinutes(t *testing.T) {
	p := officePolicy()

	assert.Equal(t, 0, p.OTMinutes(at(17, 0, 0)))
	assert.Equal(t, 0, p.OTMinutes(at(18, 0, 0)))
	assert.Equal(t, 0, p.OTMinutes(at(18, 0, 59)))
	for m := 1; m <= 120; m++ {
		assert.Equal(t, m, p.OTMinutes(at(18, 0, 0).Add(time.Duration(m)*time.Minute)))
	}
}

func TestIsEligibleForOT_ConcreteScenario(t *testing.T) {
	p := officePolicy()

	assert.Equal(t, 29, p.OTMinutes(at(18, 29, 0)))
	assert.False(t, p.IsEligibleForOT(at(18, 29, 0)))

	assert.Equal(t, 30, p.OTMinutes(at(18, 30, 0)))
	assert.True(t, p.IsEligibleForOT(at(18, 30, 0)))

	assert.False(t, p.IsEligibleForOT(at(18, 0, 0)))
}

func TestIsEligibleForOT_MatchesThreshold(t *testing.T) {
	p := officePolicy()
	for m := 0; m <= 60; m++ {
		checkOut := at(18, 0, 0).Add(time.Duration(m) * time.Minute)
		assert.Equal(t, m > 0 && p.OTMinutes(checkOut) >= p.MinOTMinutes, p.IsEligibleForOT(checkOut), "minute %d", m)
	}
}

func TestEvaluator_IsPure(t *testing.T) {
	p := officePolicy()
	checkIn := at(9, 7, 42)
	checkOut := at(19, 3, 5)

	assert.Equal(t, p.IsLate(checkIn), p.IsLate(checkIn))
	assert.Equal(t, p.LateMinutes(checkIn), p.LateMinutes(checkIn))
	assert.Equal(t, p.OTMinutes(checkOut), p.OTMinutes(checkOut))
	assert.Equal(t, p.IsEligibleForOT(checkOut), p.IsEligibleForOT(checkOut))
}

func TestEvaluator_UsesInputLocation(t *testing.T) {
	p := officePolicy()
	// 02:30 UTC is 09:30 in Bangkok.
	utc := time.Date(2024, time.March, 12, 2, 30, 0, 0, time.UTC)

	assert.False(t, p.IsLate(utc))
	assert.True(t, p.IsLate(utc.In(bangkok)))
	assert.Equal(t, 30, p.LateMinutes(utc.In(bangkok)))
}

func TestOTMinutesForWorkday_Overnight(t *testing.T) {
	p := ShiftPolicy{
		Name:            "Night",
		CheckInHour:     22,
		CheckOutHour:    6,
		CheckOutNextDay: true,
		MinOTMinutes:    30,
	}
	workday := time.Date(2024, time.March, 12, 0, 0, 0, 0, bangkok)
	checkOut := time.Date(2024, time.March, 13, 6, 45, 0, 0, bangkok)

	assert.Equal(t, time.Date(2024, time.March, 13, 6, 0, 0, 0, bangkok), p.ScheduledCheckOut(workday))
	assert.Equal(t, 45, p.OTMinutesForWorkday(workday, checkOut))
	assert.True(t, p.IsEligibleForOTOnWorkday(workday, checkOut))

	early := time.Date(2024, time.March, 13, 5, 0, 0, 0, bangkok)
	assert.Equal(t, 0, p.OTMinutesForWorkday(workday, early))
	assert.False(t, p.IsEligibleForOTOnWorkday(workday, early))
}

func TestOTMinutesForWorkday_CheckOutAfterMidnight(t *testing.T) {
	p := officePolicy()
	workday := time.Date(2024, time.March, 12, 0, 0, 0, 0, bangkok)
	checkOut := time.Date(2024, time.March, 13, 0, 30, 0, 0, bangkok)

	// Same-date anchoring sees 00:30 as before 18:00.
	assert.Equal(t, 0, p.OTMinutes(checkOut))
	assert.Equal(t, 390, p.OTMinutesForWorkday(workday, checkOut))
}

func TestShiftPolicy_Validate(t *testing.T) {
	require.NoError(t, officePolicy().Validate())

	bad := ShiftPolicy{
		CheckInHour:            24,
		CheckInMinute:          -1,
		CheckOutHour:           -1,
		CheckOutMinute:         60,
		LateGracePeriodMinutes: -5,
		MinOTMinutes:           -1,
		WorkDays:               []int{0},
	}
	err := bad.Validate()
	require.Error(t, err)
	for _, field := range []string{"name", "check_in_hour", "check_in_minute", "check_out_hour", "check_out_minute", "late_grace_period_minutes", "min_ot_minutes", "work_days"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestIsWorkDay(t *testing.T) {
	p := officePolicy()
	sunday := time.Date(2024, time.March, 10, 0, 0, 0, 0, bangkok)
	monday := sunday.AddDate(0, 0, 1)

	assert.True(t, p.IsWorkDay(sunday))

	p.WorkDays = []int{1, 2, 3, 4, 5}
	assert.False(t, p.IsWorkDay(sunday))
	assert.True(t, p.IsWorkDay(monday))

	p.WorkDays = []int{7}
	assert.True(t, p.IsWorkDay(sunday))
}
