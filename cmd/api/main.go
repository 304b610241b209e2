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

	"github.com/Traore-oss/SGRH-sub001/internal/config"
	appHTTP "github.com/Traore-oss/SGRH-sub001/internal/handler/http"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/middleware"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/cron"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/storage"
	"github.com/Traore-oss/SGRH-sub001/internal/repository/postgresql"
	attendanceService "github.com/Traore-oss/SGRH-sub001/internal/service/attendance"
	serviceAuth "github.com/Traore-oss/SGRH-sub001/internal/service/auth"
	dashboardService "github.com/Traore-oss/SGRH-sub001/internal/service/dashboard"
	departmentService "github.com/Traore-oss/SGRH-sub001/internal/service/department"
	"github.com/Traore-oss/SGRH-sub001/internal/service/file"
	leaveService "github.com/Traore-oss/SGRH-sub001/internal/service/leave"
	payrollService "github.com/Traore-oss/SGRH-sub001/internal/service/payroll"
	performanceService "github.com/Traore-oss/SGRH-sub001/internal/service/performance"
	recruitmentService "github.com/Traore-oss/SGRH-sub001/internal/service/recruitment"
	trainingService "github.com/Traore-oss/SGRH-sub001/internal/service/training"
	userService "github.com/Traore-oss/SGRH-sub001/internal/service/user"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

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

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sgrh"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(dsn); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	loc := cfg.Location()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	evaluationRepo := postgresql.NewEvaluationRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	offerRepo := postgresql.NewOfferRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.CookieSecure)

	authSvc := serviceAuth.NewAuthService(tx, userRepo, JWTService)
	userSvc := userService.NewUserService(tx, userRepo, fileService)
	departmentSvc := departmentService.NewDepartmentService(tx, departmentRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, userRepo, collector, loc)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRequestRepo, attendanceRepo, userRepo, collector)
	payrollSvc := payrollService.NewPayrollService(tx, paymentRepo, attendanceRepo, userRepo, collector, cfg.App.CompanyName)
	performanceSvc := performanceService.NewPerformanceService(evaluationRepo, userRepo)
	trainingSvc := trainingService.NewTrainingService(tx, sessionRepo, userRepo)
	recruitmentSvc := recruitmentService.NewRecruitmentService(tx, offerRepo, fileService, collector, loc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, loc)

	loginLimiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.Security.LoginRatePerMinute))
	defer loginLimiter.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterOptions{
			Logger:       logger,
			FrontendURL:  cfg.App.FrontendURL,
			UploadsDir:   cfg.Storage.BasePath,
			Metrics:      collector,
			Gatherer:     registry,
			LoginLimiter: loginLimiter,
			Accounts:     userRepo,
		},
		appHTTP.NewAuthHandler(JWTService, authSvc),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewDepartmentHandler(departmentSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewPerformanceHandler(performanceSvc),
		appHTTP.NewTrainingHandler(trainingSvc),
		appHTTP.NewRecruitmentHandler(recruitmentSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, loc).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
