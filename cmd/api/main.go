package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/worklane/ledger-backend-go/internal/config"
	appHTTP "github.com/worklane/ledger-backend-go/internal/handler/http"
	"github.com/worklane/ledger-backend-go/internal/pkg/database"
	"github.com/worklane/ledger-backend-go/internal/pkg/lock"
	"github.com/worklane/ledger-backend-go/internal/repository/postgresql"
	attendanceService "github.com/worklane/ledger-backend-go/internal/service/attendance"
	leaveService "github.com/worklane/ledger-backend-go/internal/service/leave"
	payrollService "github.com/worklane/ledger-backend-go/internal/service/payroll"
	"github.com/worklane/ledger-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.DatabaseURL()
	if err := runMigrations(dsn); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	txManager := postgresql.NewTxManager(db)
	locks := lock.NewKeyed()

	attendanceSvc := attendanceService.NewService(txManager, locks, attendanceRepo, employeeRepo, balanceRepo, payrollRepo)
	leaveSvc := leaveService.NewService(txManager, locks, balanceRepo, requestRepo, employeeRepo, payrollRepo)
	payrollSvc := payrollService.NewService(locks, payrollRepo, employeeRepo, attendanceRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(attendanceHandler, leaveHandler, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server listening", "addr", port, "env", cfg.App.Env)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runMigrations(dsn string) error {
	migrationDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer migrationDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(migrationDB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
