package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	officePayrollHandler OfficePayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/employees", func(r chi.Router) {
			r.Post("/", employeeHandler.Create)
			r.Get("/", employeeHandler.ListByStatus)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetByID)
				r.Put("/rates", employeeHandler.RecalculateRates)
				r.Get("/advance", employeeHandler.GetActiveAdvance)
				r.Get("/advances", employeeHandler.ListAdvances)
				r.Post("/advances", employeeHandler.CreateAdvance)
			})
		})

		r.Route("/payrolls", func(r chi.Router) {
			r.Post("/", payrollHandler.CreatePayroll)
			r.Get("/", payrollHandler.ListPayrolls)
			r.Get("/export", payrollHandler.ExportPayrollRegister)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetPayroll)
				r.Patch("/", payrollHandler.UpdatePayroll)
				r.Patch("/status", payrollHandler.UpdatePayrollStatus)
				r.Delete("/", payrollHandler.DeletePayroll)
				r.Get("/payslip", payrollHandler.DownloadPayslip)
			})
		})

		r.Route("/office-payrolls", func(r chi.Router) {
			r.Post("/", officePayrollHandler.Create)
			r.Get("/", officePayrollHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", officePayrollHandler.GetByID)
				r.Patch("/", officePayrollHandler.Update)
				r.Patch("/status", officePayrollHandler.UpdateStatus)
				r.Delete("/", officePayrollHandler.Delete)
			})
		})
	})

	return r
}

// NewLogger builds the JSON logger shared by request logging and services.
func NewLogger(level slog.Level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "construction-backoffice"),
		slog.String("env", env),
	)
}
