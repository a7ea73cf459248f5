package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/worklane/ledger-backend-go/internal/domain/leave"
	"github.com/worklane/ledger-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

func (r *leaveBalanceRepository) GetOrCreate(ctx context.Context, employeeID string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	// The no-op DO UPDATE makes the insert return the existing row; a fresh
	// row picks up the schema default of the annual allowance.
	query := `
		INSERT INTO leave_balances (employee_id)
		VALUES ($1)
		ON CONFLICT (employee_id) DO UPDATE SET employee_id = EXCLUDED.employee_id
		RETURNING employee_id, remaining_days
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID).Scan(&b.EmployeeID, &b.RemainingDays)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to get or create leave balance: %w", err)
	}

	return b, nil
}

func (r *leaveBalanceRepository) SetRemaining(ctx context.Context, employeeID string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET remaining_days = $1, updated_at = NOW()
		WHERE employee_id = $2
	`

	tag, err := q.Exec(ctx, query, days, employeeID)
	if err != nil {
		return fmt.Errorf("failed to set leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, duration_days, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, leave_type, start_date, end_date, duration_days, status, created_at, decided_at
	`

	var lr leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.Type, req.StartDate, req.EndDate, req.DurationDays, req.Status,
	).Scan(
		&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.DurationDays, &lr.Status, &lr.CreatedAt, &lr.DecidedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return lr, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, start_date, end_date, duration_days, status, created_at, decided_at
		FROM leave_requests
		WHERE id = $1
	`

	var lr leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.DurationDays, &lr.Status, &lr.CreatedAt, &lr.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

func (r *leaveRequestRepository) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	// The status guard makes the decision first-write-wins under concurrency.
	query := `
		UPDATE leave_requests
		SET status = $1, decided_at = $2
		WHERE id = $3 AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, query, status, decidedAt, id)
	if err != nil {
		return fmt.Errorf("failed to decide leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveAlreadyDecided
	}

	return nil
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, start_date, end_date, duration_days, status, created_at, decided_at
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

func (r *leaveRequestRepository) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, start_date, end_date, duration_days, status, created_at, decided_at
		FROM leave_requests
		WHERE status = 'PENDING'
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

func (r *leaveRequestRepository) SumApprovedDays(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(duration_days), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND status = 'APPROVED'
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved leave days: %w", err)
	}

	return sum, nil
}

func (r *leaveRequestRepository) CountByStatus(ctx context.Context, employeeID string) (map[leave.LeaveRequestStatus]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM leave_requests
		WHERE employee_id = $1
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count leave requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[leave.LeaveRequestStatus]int)
	for rows.Next() {
		var status leave.LeaveRequestStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan leave request count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave request counts: %w", err)
	}

	return counts, nil
}

func scanLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var list []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.DurationDays, &lr.Status, &lr.CreatedAt, &lr.DecidedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		list = append(list, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return list, nil
}
