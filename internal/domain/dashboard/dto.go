package dashboard

import "github.com/cmlabs-hris/line-attendance-go/internal/domain/report"

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	Today           report.DailyOverviewResponse `json:"today"`
	AttendanceStats AttendanceStatsResponse      `json:"attendance_stats"`
	Pending         PendingRequestsResponse      `json:"pending"`
	UpdatedAt       string                       `json:"updated_at"`
}

// AttendanceStatsResponse is today's split for the pie chart. Percentages are of the roster.
type AttendanceStatsResponse struct {
	OnTime        int     `json:"on_time"`
	Late          int     `json:"late"`
	Leave         int     `json:"leave"`
	Absent        int     `json:"absent"`
	Total         int     `json:"total"`
	OnTimePercent float64 `json:"on_time_percent"`
	LatePercent   float64 `json:"late_percent"`
	LeavePercent  float64 `json:"leave_percent"`
	AbsentPercent float64 `json:"absent_percent"`
	Date          string  `json:"date"` // Format: "YYYY-MM-DD"
}

// PendingRequestsResponse counts requests waiting for an admin
type PendingRequestsResponse struct {
	Leave    int64 `json:"leave"`
	Overtime int64 `json:"overtime"`
	Swap     int64 `json:"swap"`
	Total    int64 `json:"total"`
}

// ToAttendanceStats splits a daily overview into on-time, late, leave and absent.
func ToAttendanceStats(o report.DailyOverview) AttendanceStatsResponse {
	stats := AttendanceStatsResponse{
		OnTime: o.Present - o.Late,
		Late:   o.Late,
		Leave:  o.Leave,
		Absent: o.Absent,
		Total:  o.Total,
		Date:   o.Date.Format("2006-01-02"),
	}
	if o.Total > 0 {
		total := float64(o.Total)
		stats.OnTimePercent = float64(stats.OnTime) / total * 100
		stats.LatePercent = float64(stats.Late) / total * 100
		stats.LeavePercent = float64(stats.Leave) / total * 100
		stats.AbsentPercent = float64(stats.Absent) / total * 100
	}
	return stats
}
