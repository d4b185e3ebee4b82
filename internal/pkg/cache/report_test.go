package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	r := &Redis{prefix: "attendance"}
	assert.Equal(t, "attendance:report:daily:2024-03-12", r.key(dailyReportPrefix, "2024-03-12"))
}

// Needs a running Redis; set TEST_REDIS_ADDR to enable.
func TestTryMarkDailyReport(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	r, err := NewRedis(ctx, Config{Addr: addr, Prefix: fmt.Sprintf("test-%d", time.Now().UnixNano())})
	require.NoError(t, err)
	defer r.Close()

	first, err := r.TryMarkDailyReport(ctx, "2024-03-12")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := r.TryMarkDailyReport(ctx, "2024-03-12")
	require.NoError(t, err)
	assert.False(t, second)

	require.NoError(t, r.UnmarkDailyReport(ctx, "2024-03-12"))
	again, err := r.TryMarkDailyReport(ctx, "2024-03-12")
	require.NoError(t, err)
	assert.True(t, again)

	require.NoError(t, r.UnmarkDailyReport(ctx, "2024-03-12"))
}
