package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BalanceRepository interface {
	// GetOrCreate returns the employee's balance row, provisioning it with the
	// annual allowance on first touch.
	GetOrCreate(ctx context.Context, employeeID string) (LeaveBalance, error)

	// SetRemaining overwrites the balance. Callers pass the clamped value;
	// the schema refuses negatives.
	SetRemaining(ctx context.Context, employeeID string, days decimal.Decimal) error
}

type RequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Decide flips a PENDING request to the given terminal status. Returns
	// ErrLeaveAlreadyDecided when the request is no longer PENDING.
	Decide(ctx context.Context, id string, status LeaveRequestStatus, decidedAt time.Time) error

	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListPending(ctx context.Context) ([]LeaveRequest, error)
	SumApprovedDays(ctx context.Context, employeeID string) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, employeeID string) (map[LeaveRequestStatus]int, error)
}
