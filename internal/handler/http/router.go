package http

import (
	"log/slog"
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/middleware"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterOptions carries the infrastructure shared by every route.
type RouterOptions struct {
	Logger       *slog.Logger
	FrontendURL  string
	UploadsDir   string
	Metrics      *metrics.Collector
	Gatherer     prometheus.Gatherer
	LoginLimiter *middleware.RateLimiter
	Accounts     middleware.AccountLookup
}

func NewRouter(
	JWTService jwt.Service,
	opts RouterOptions,
	authHandler AuthHandler,
	userHandler UserHandler,
	departmentHandler DepartmentHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	performanceHandler PerformanceHandler,
	trainingHandler TrainingHandler,
	recruitmentHandler RecruitmentHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	can := middleware.RequirePermission
	accounts := middleware.NewAccountMiddleware(opts.Accounts)

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(opts.Metrics.Middleware)

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Gatherer))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Verifier(JWTService))

		// Public
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.With(opts.LoginLimiter.Middleware).Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthRequired(JWTService))
				r.Use(accounts.RequireActiveAccount)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Put("/password", authHandler.ChangePassword)
			})
		})
		r.Get("/recrutement/offres", recruitmentHandler.ListPublicOffers)
		r.Post("/recrutement/offres/{id}/candidatures", recruitmentHandler.Apply)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(accounts.RequireActiveAccount)

			r.Route("/Users", func(r chi.Router) {
				r.With(can(user.PermissionEmployeeViewAll)).Get("/", userHandler.List)
				r.With(can(user.PermissionEmployeeManage)).Post("/", userHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					// ownership is checked by the service
					r.Get("/", userHandler.Get)
					r.Post("/photo", userHandler.UploadPhoto)

					r.With(can(user.PermissionEmployeeManage)).Put("/", userHandler.Update)
					r.With(can(user.PermissionEmployeeDelete)).Delete("/", userHandler.Delete)
					r.With(can(user.PermissionEmployeeActivate)).Patch("/toggle-active", userHandler.ToggleActive)
				})
			})

			r.Route("/departements", func(r chi.Router) {
				r.Get("/", departmentHandler.List)
				r.Get("/{id}", departmentHandler.Get)
				r.With(can(user.PermissionEmployeeViewAll)).Get("/{id}/employes", departmentHandler.ListEmployees)

				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionDepartmentManage))
					r.Post("/", departmentHandler.Create)
					r.Put("/{id}", departmentHandler.Update)
				})
				r.With(can(user.PermissionDepartmentDelete)).Delete("/{id}", departmentHandler.Delete)
			})

			r.Route("/pointages", func(r chi.Router) {
				r.With(can(user.PermissionAttendanceViewOwn)).Get("/me", attendanceHandler.GetMyAttendance)
				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionAttendanceClockOwn))
					r.Post("/me/arrivee", attendanceHandler.ClockIn)
					r.Post("/me/depart", attendanceHandler.ClockOut)
				})

				r.With(can(user.PermissionAttendanceViewAll)).Get("/", attendanceHandler.List)
				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionAttendanceMark))
					r.Post("/arrivee", attendanceHandler.MarkArrival)
					r.Post("/depart", attendanceHandler.MarkDeparture)
				})

				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionAttendanceManage))
					r.Post("/", attendanceHandler.Create)
					r.Post("/journee", attendanceHandler.CreateDailySheet)
					r.Get("/export", attendanceHandler.Export)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			r.Route("/conges", func(r chi.Router) {
				r.With(can(user.PermissionLeaveCreate)).Post("/", leaveHandler.CreateRequest)
				r.With(can(user.PermissionLeaveViewOwn)).Get("/me", leaveHandler.GetMyRequests)
				r.With(can(user.PermissionLeaveViewAll)).Get("/", leaveHandler.ListRequests)

				r.Route("/{id}", func(r chi.Router) {
					// ownership is checked by the service
					r.Get("/", leaveHandler.GetRequest)
					r.Put("/", leaveHandler.UpdateRequest)
					r.Delete("/", leaveHandler.DeleteRequest)

					r.Group(func(r chi.Router) {
						r.Use(can(user.PermissionLeaveApprove))
						r.Patch("/approuver", leaveHandler.ApproveRequest)
						r.Patch("/refuser", leaveHandler.RejectRequest)
					})
				})
			})

			r.Route("/salaires", func(r chi.Router) {
				r.With(can(user.PermissionPayrollViewOwn)).Get("/me", payrollHandler.Mine)
				r.Get("/{id}", payrollHandler.Get)
				r.Get("/{id}/bulletin", payrollHandler.Payslip)

				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionPayrollManage))
					r.Post("/", payrollHandler.Create)
					r.Post("/simulation", payrollHandler.Simulate)
					r.Get("/", payrollHandler.List)
					r.Get("/export", payrollHandler.Export)
					r.Put("/{id}", payrollHandler.Update)
					r.Patch("/{id}/payer", payrollHandler.MarkPaid)
					r.Delete("/{id}", payrollHandler.Delete)
				})
			})

			r.Route("/performances", func(r chi.Router) {
				r.With(can(user.PermissionPerformanceViewOwn)).Get("/me", performanceHandler.Mine)
				r.Get("/{id}", performanceHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionPerformanceManage))
					r.Get("/", performanceHandler.List)
					r.Post("/", performanceHandler.Create)
					r.Put("/{id}", performanceHandler.Update)
					r.Delete("/{id}", performanceHandler.Delete)
				})
			})

			r.Route("/formations", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionTrainingView))
					r.Get("/", trainingHandler.List)
					r.Get("/{id}", trainingHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionTrainingEnroll))
					r.Post("/{id}/inscription", trainingHandler.Enroll)
					r.Delete("/{id}/inscription", trainingHandler.Unenroll)
				})

				r.Group(func(r chi.Router) {
					r.Use(can(user.PermissionTrainingManage))
					r.Post("/", trainingHandler.Create)
					r.Put("/{id}", trainingHandler.Update)
					r.Delete("/{id}", trainingHandler.Delete)
					r.Post("/{id}/participants", trainingHandler.AddParticipant)
					r.Delete("/{id}/participants/{employeId}", trainingHandler.RemoveParticipant)
				})
			})

			r.Route("/recrutement", func(r chi.Router) {
				r.Use(can(user.PermissionRecruitmentManage))
				r.Get("/", recruitmentHandler.ListOffers)
				r.Post("/", recruitmentHandler.CreateOffer)
				r.Get("/{id}", recruitmentHandler.GetOffer)
				r.Put("/{id}", recruitmentHandler.UpdateOffer)
				r.Delete("/{id}", recruitmentHandler.DeleteOffer)
				r.Patch("/{id}/candidats/{candidatId}", recruitmentHandler.UpdateCandidateStatus)
				r.Delete("/{id}/candidats/{candidatId}", recruitmentHandler.DeleteCandidate)
			})

			r.With(can(user.PermissionDashboardView)).Get("/dashboard", dashboardHandler.GetDashboard)
		})
	})
	return r
}
