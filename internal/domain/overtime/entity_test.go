package overtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Minutes(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
		ok         bool
	}{
		{"18:00", "20:30", 150, true},
		{"22:00", "02:00", 240, true},
		{"18:00", "18:00", 0, false},
		{"9:00", "09:00", 0, false},
		{"9:00", "10:30", 90, true},
		{"18:00", "bad", 0, false},
	}
	for _, tc := range cases {
		got, ok := Request{StartTime: tc.start, EndTime: tc.end}.Minutes()
		assert.Equal(t, tc.ok, ok, "%s-%s", tc.start, tc.end)
		assert.Equal(t, tc.want, got, "%s-%s", tc.start, tc.end)
	}
}

func TestHours(t *testing.T) {
	assert.Equal(t, "0.00", Hours(0))
	assert.Equal(t, "2.50", Hours(150))
	assert.Equal(t, "1.58", Hours(95))
}
