package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	reportservice "github.com/cmlabs-hris/line-attendance-go/internal/service/report"
)

// DailyMarker records which dates already had their report sent.
// *cache.Redis implements it.
type DailyMarker interface {
	TryMarkDailyReport(ctx context.Context, date string) (bool, error)
	UnmarkDailyReport(ctx context.Context, date string) error
}

// AdminSender delivers a text message to the admin group.
type AdminSender interface {
	SendToAdmins(ctx context.Context, text string) error
}

type ReportJobs struct {
	reportService report.ReportService
	marker        DailyMarker
	sender        AdminSender
	loc           *time.Location
	hour          int
	now           func() time.Time
}

func NewReportJobs(reportService report.ReportService, marker DailyMarker, sender AdminSender, loc *time.Location, hour int) *ReportJobs {
	return &ReportJobs{
		reportService: reportService,
		marker:        marker,
		sender:        sender,
		loc:           loc,
		hour:          hour,
		now:           time.Now,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "send_daily_report",
		Interval: 10 * time.Minute,
		Timeout:  2 * time.Minute,
		Fn:       j.SendDailyReport,
	})
}

// SendDailyReport pushes today's overview to the admin group once per date,
// on the first run at or after the configured hour.
func (j *ReportJobs) SendDailyReport(ctx context.Context) error {
	now := j.now().In(j.loc)
	if now.Hour() < j.hour {
		return nil
	}
	date := now.Format("2006-01-02")

	claimed, err := j.marker.TryMarkDailyReport(ctx, date)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	slog.Info("cron: sending daily report", "date", date)

	if err := j.send(ctx, date); err != nil {
		if uerr := j.marker.UnmarkDailyReport(context.WithoutCancel(ctx), date); uerr != nil {
			slog.Error("cron: failed to release daily report marker", "date", date, "error", uerr)
		}
		return err
	}

	slog.Info("cron: daily report sent", "date", date)
	return nil
}

func (j *ReportJobs) send(ctx context.Context, date string) error {
	overview, err := j.reportService.DailyReport(ctx, report.DailyReportRequest{Date: date})
	if err != nil {
		return fmt.Errorf("failed to build daily report: %w", err)
	}
	if err := j.sender.SendToAdmins(ctx, reportservice.DailyMessage(overview)); err != nil {
		return fmt.Errorf("failed to send daily report: %w", err)
	}
	return nil
}
