package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplekit/payroll-backend-go/internal/handler/http/middleware"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	dtrHandler DtrHandler,
	payrollHandler PayrollHandler,
	activityHandler ActivityHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", userHandler.Create)
				r.Post("/{id}/link-employee", userHandler.LinkEmployee)
			})

			r.Route("/companies", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", companyHandler.Create)
				r.Get("/", companyHandler.List)
				r.Get("/{id}", companyHandler.GetByID)
				r.Put("/{id}", companyHandler.Update)
				r.Delete("/{id}", companyHandler.Deactivate)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/", employeeHandler.Create)
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.GetByID)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Deactivate)
			})

			// Staff reach their own records through /me.
			r.Route("/dtrs", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/", dtrHandler.Submit)
				r.Get("/", dtrHandler.List)
				r.Get("/{id}", dtrHandler.GetByID)
				r.Put("/{id}", dtrHandler.Update)
				r.Delete("/{id}", dtrHandler.Delete)
				r.Patch("/{id}/approve", dtrHandler.Approve)
				r.Patch("/{id}/reject", dtrHandler.Reject)
				r.Patch("/{id}/request-revision", dtrHandler.RequestRevision)
				r.Post("/{id}/process-payroll", payrollHandler.ProcessDtr)
				r.Post("/bulk/approve", dtrHandler.BulkApprove)
				r.Post("/bulk/reject", dtrHandler.BulkReject)
				r.Post("/bulk/process-payroll", payrollHandler.BulkProcessDtrs)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/generate", payrollHandler.Generate)
				r.Get("/", payrollHandler.List)
				r.Get("/{id}", payrollHandler.GetByID)
				r.Patch("/{id}/process", payrollHandler.Process)
				r.Patch("/{id}/mark-paid", payrollHandler.MarkPaid)
				r.Delete("/{id}", payrollHandler.Delete)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", activityHandler.List)
			})

			// Self service for users with a linked employee
			r.Route("/me", func(r chi.Router) {
				r.Post("/dtrs", dtrHandler.SubmitOwn)
				r.Get("/dtrs", dtrHandler.ListOwn)
				r.Get("/payrolls", payrollHandler.ListOwn)
			})
		})
	})
	return r
}
