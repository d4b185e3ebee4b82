package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/line-attendance-go/internal/handler/http/response"
	reportservice "github.com/cmlabs-hris/line-attendance-go/internal/service/report"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	// GetDailyReport handles GET /reports/daily
	GetDailyReport(w http.ResponseWriter, r *http.Request)
	// GetSummary handles GET /reports/summary
	GetSummary(w http.ResponseWriter, r *http.Request)
	// GetEmployeeCSV handles GET /reports/employees/{id}/csv
	GetEmployeeCSV(w http.ResponseWriter, r *http.Request)
	// GetMyReport handles GET /me/report
	GetMyReport(w http.ResponseWriter, r *http.Request)
	// GetMyCSV handles GET /me/report/csv
	GetMyCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	loc           *time.Location
	now           func() time.Time
}

func NewReportHandler(reportService report.ReportService, loc *time.Location) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		loc:           loc,
		now:           time.Now,
	}
}

// periodParams reads start_date and end_date, defaulting to the current
// month up to today when both are absent.
func (h *reportHandlerImpl) periodParams(r *http.Request) report.SummaryRequest {
	req := report.SummaryRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if req.StartDate == "" && req.EndDate == "" {
		now := h.now().In(h.loc)
		req.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc).Format("2006-01-02")
		req.EndDate = now.Format("2006-01-02")
	}
	return req
}

func (h *reportHandlerImpl) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	overview, err := h.reportService.DailyReport(r.Context(), report.DailyReportRequest{Date: r.URL.Query().Get("date")})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report.ToDailyOverviewResponse(overview))
}

func (h *reportHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	req := h.periodParams(r)

	summaries, err := h.reportService.Summary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report.ToPeriodSummaryResponse(req, summaries))
}

func (h *reportHandlerImpl) GetEmployeeCSV(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.EmployeeReport(r.Context(), report.EmployeeReportRequest{
		EmployeeID:     chi.URLParam(r, "id"),
		SummaryRequest: h.periodParams(r),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeCSV(w, rep)
}

func (h *reportHandlerImpl) GetMyReport(w http.ResponseWriter, r *http.Request) {
	req := h.periodParams(r)

	rep, err := h.reportService.MyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report.ToPeriodSummaryResponse(req, []report.EmployeeSummary{{Employee: rep.Employee, Summary: rep.Summary}}))
}

func (h *reportHandlerImpl) GetMyCSV(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.MyReport(r.Context(), h.periodParams(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeCSV(w, rep)
}

// writeCSV renders into a buffer first so a failure can still produce a JSON error.
func writeCSV(w http.ResponseWriter, rep report.EmployeeReport) {
	var buf bytes.Buffer
	if err := reportservice.WriteEmployeeCSV(&buf, rep); err != nil {
		slog.Error("failed to render attendance csv", "employee_id", rep.Employee.ID, "error", err)
		response.InternalServerError(w, "Failed to generate report")
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv", rep.Start.Format("20060102"), rep.End.Format("20060102"))
	response.Attachment(w, filename, "text/csv; charset=utf-8", buf.Bytes())
}
