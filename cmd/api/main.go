package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/line-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/linebot"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/storage"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/line-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/line-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/line-attendance-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/line-attendance-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/line-attendance-go/internal/service/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/line-attendance-go/internal/service/leave"
	"github.com/cmlabs-hris/line-attendance-go/internal/service/notification"
	overtimeService "github.com/cmlabs-hris/line-attendance-go/internal/service/overtime"
	reportService "github.com/cmlabs-hris/line-attendance-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/line-attendance-go/internal/service/shift"
	swapService "github.com/cmlabs-hris/line-attendance-go/internal/service/swap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const appName = "line-attendance"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", appName),
		slog.String("version", cfg.App.Version),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: int32(cfg.Database.MaxConns)})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	rdb, err := cache.NewRedis(ctx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		return fmt.Errorf("error connecting to redis: %w", err)
	}
	defer rdb.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)
	m.RegisterPool(db.AcquiredConns)

	// Repositories
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	swapRepo := postgresql.NewSwapRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	transactor := postgresql.NewTransactor(db)

	// Infrastructure
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	LineService := oauth.NewLineService(cfg.Line.ChannelID, cfg.Line.ChannelSecret, cfg.Line.RedirectURL, cfg.Line.Scopes)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}
	fileSvc := file.NewFileService(fileStorage)

	notifier := notification.NewNotificationService(
		linebot.NewClient(cfg.Line.MessagingAPIBase, cfg.Line.MessagingToken, cfg.Line.NotificationTimeout),
		m,
		notification.Config{
			AdminGroupID:    cfg.Line.AdminGroupID,
			NotifyEmployees: cfg.Line.NotifyEmployees,
			Timeout:         cfg.Line.NotificationTimeout,
		},
	)
	defer notifier.Stop()

	// Services
	authSvc := serviceAuth.NewAuthService(employeeRepo, JWTService, LineService, serviceAuth.AdminAccount{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	})
	shiftSvc := shiftService.NewShiftService(shiftRepo, employeeRepo, transactor)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, shiftRepo)
	site := utils.Site{Latitude: cfg.Site.Latitude, Longitude: cfg.Site.Longitude, RadiusMeters: cfg.Site.RadiusMeters}
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, shiftSvc, fileSvc, site, loc, m)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, notifier)
	overtimeSvc := overtimeService.NewOvertimeService(overtimeRepo, employeeRepo, notifier)
	swapSvc := swapService.NewSwapService(swapRepo, employeeRepo, notifier)
	reportSvc := reportService.NewReportService(reportRepo, employeeRepo, shiftRepo, loc, cfg.Report.Fanout, m)
	dashboardSvc := dashboardService.NewDashboardService(reportSvc, leaveRepo, overtimeRepo, swapRepo)

	// Cron
	scheduler := cron.NewScheduler()
	cron.NewReportJobs(reportSvc, rdb, notifier, loc, cfg.Report.DailyHour).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        appName,
			Version:        cfg.App.Version,
			Env:            cfg.App.Env,
			AllowedOrigins: []string{cfg.App.FrontendURL},
			UploadDir:      fileStorage.BasePath(),
			Metrics:        metrics.Handler(registry),
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authSvc, LineService, cfg.App.FrontendURL, cfg.App.Env == "production"),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Shift:      appHTTP.NewShiftHandler(shiftSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Leave:      appHTTP.NewLeaveHandler(leaveSvc),
			Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
			Swap:       appHTTP.NewSwapHandler(swapSvc),
			Report:     appHTTP.NewReportHandler(reportSvc, loc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
