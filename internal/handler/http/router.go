package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/line-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the non-handler settings of the router.
type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	UploadDir      string
	Metrics        http.Handler
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Shift      ShiftHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Swap       SwapHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	if cfg.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/liff", h.Auth.LoginLIFF)
			r.Post("/admin/login", h.Auth.LoginAdmin)
			r.Get("/line/login", h.Auth.LoginWithLine)
			r.Get("/line/callback", h.Auth.OAuthCallbackLine)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)

			// Employee self-service
			r.Route("/me", func(r chi.Router) {
				r.Use(middleware.EmployeeRequired)

				r.Get("/", h.Employee.GetMe)
				r.Get("/report", h.Report.GetMyReport)
				r.Get("/report/csv", h.Report.GetMyCSV)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", h.Attendance.GetMyAttendance)
					r.Get("/today", h.Attendance.Today)
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
					r.Post("/status", h.Attendance.ChangeStatus)
				})

				r.Get("/leave", h.Leave.GetMyRequests)
				r.Post("/leave", h.Leave.CreateRequest)
				r.Get("/overtime", h.Overtime.GetMyRequests)
				r.Post("/overtime", h.Overtime.CreateRequest)
				r.Get("/swaps", h.Swap.GetMyRequests)
				r.Post("/swaps", h.Swap.CreateRequest)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/dashboard", h.Dashboard.GetDashboard)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Get("/{id}", h.Employee.GetEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Post("/{id}/deactivate", h.Employee.DeactivateEmployee)
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", h.Shift.List)
					r.Post("/", h.Shift.Create)
					r.Get("/{id}", h.Shift.Get)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", h.Attendance.List)
					r.Post("/", h.Attendance.Create)
					r.Get("/{id}", h.Attendance.Get)
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})

				r.Route("/leave", func(r chi.Router) {
					r.Get("/", h.Leave.ListRequests)
					r.Get("/{id}", h.Leave.GetRequest)
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})

				r.Route("/overtime", func(r chi.Router) {
					r.Get("/", h.Overtime.ListRequests)
					r.Get("/{id}", h.Overtime.GetRequest)
					r.Post("/{id}/approve", h.Overtime.ApproveRequest)
					r.Post("/{id}/reject", h.Overtime.RejectRequest)
				})

				r.Route("/swaps", func(r chi.Router) {
					r.Get("/", h.Swap.ListRequests)
					r.Get("/{id}", h.Swap.GetRequest)
					r.Post("/{id}/approve", h.Swap.ApproveRequest)
					r.Post("/{id}/reject", h.Swap.RejectRequest)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/daily", h.Report.GetDailyReport)
					r.Get("/summary", h.Report.GetSummary)
					r.Get("/employees/{id}/csv", h.Report.GetEmployeeCSV)
				})
			})
		})
	})
	return r
}
