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

	"github.com/cmlabs-hris/construction-backoffice-go/internal/config"
	appHTTP "github.com/cmlabs-hris/construction-backoffice-go/internal/handler/http"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/database"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/construction-backoffice-go/internal/repository/postgresql"
	advanceService "github.com/cmlabs-hris/construction-backoffice-go/internal/service/advance"
	employeeService "github.com/cmlabs-hris/construction-backoffice-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/construction-backoffice-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.SlogLevel(), cfg.App.Env)
	slog.SetDefault(logger)

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(dsn); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations applied")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	officePayrollRepo := postgresql.NewOfficePayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	ledgerSvc := advanceService.NewLedgerService(txManager, advanceRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, employeeRepo, ledgerSvc)
	officePayrollSvc := payrollService.NewOfficePayrollService(officePayrollRepo, employeeRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc, ledgerSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	officePayrollHandler := appHTTP.NewOfficePayrollHandler(officePayrollSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		employeeHandler,
		payrollHandler,
		officePayrollHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
