package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	dailyReportPrefix = "report:daily"

	// Kept past the next day's run so a late restart cannot resend.
	dailyReportTTL = 36 * time.Hour
)

// TryMarkDailyReport atomically claims the daily report send for date
// (YYYY-MM-DD). It returns false when another run already claimed it.
func (r *Redis) TryMarkDailyReport(ctx context.Context, date string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(dailyReportPrefix, date), "sent", dailyReportTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark daily report: %w", err)
	}
	return ok, nil
}

// UnmarkDailyReport releases the claim so a failed send can be retried.
func (r *Redis) UnmarkDailyReport(ctx context.Context, date string) error {
	if err := r.client.Del(ctx, r.key(dailyReportPrefix, date)).Err(); err != nil {
		return fmt.Errorf("failed to unmark daily report: %w", err)
	}
	return nil
}
