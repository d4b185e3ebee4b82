package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_EveryValueIsHandled(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.IsValid(), s)
		assert.NotEqual(t, string(s), s.Label(), "%s has no Thai label", s)
	}

	assert.False(t, Status("checked-in").IsValid())
	assert.Equal(t, "unknown", Status("unknown").Label())
}

func TestStatus_CountsAsPresent(t *testing.T) {
	for _, s := range Statuses {
		assert.Equal(t, s != StatusOnLeave, s.CountsAsPresent(), s)
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusCheckedIn, StatusPreBreak, true},
		{StatusLate, StatusCheckedOut, true},
		{StatusPreBreak, StatusPostBreak, true},
		{StatusPreBreak, StatusCheckedOut, false},
		{StatusPostBreak, StatusOffsiteOutbound, true},
		{StatusOffsiteOutbound, StatusOffsiteReturn, true},
		{StatusOffsiteOutbound, StatusCheckedOut, false},
		{StatusCheckedOut, StatusCheckedIn, false},
		{StatusOnLeave, StatusCheckedIn, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestEvent_IsLateReadsSnapshot(t *testing.T) {
	assert.True(t, Event{Status: StatusLate}.IsLate())
	assert.True(t, Event{Status: StatusCheckedOut, LateMinutes: 3}.IsLate())
	assert.False(t, Event{Status: StatusCheckedOut}.IsLate())
}

func TestEvent_IsMalformed(t *testing.T) {
	ok := Event{EmployeeID: "e1", Date: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), Status: StatusCheckedIn}
	assert.False(t, ok.IsMalformed())

	noDate := ok
	noDate.Date = time.Time{}
	assert.True(t, noDate.IsMalformed())

	badStatus := ok
	badStatus.Status = "teleported"
	assert.True(t, badStatus.IsMalformed())

	negative := ok
	negative.LateMinutes = -1
	assert.True(t, negative.IsMalformed())
}
