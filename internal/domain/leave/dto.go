package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	LeaveType  string `json:"leave_type" validate:"required,oneof=CASUAL SICK EARNED PAID"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	// Confirm acknowledges that the span exceeds the remaining balance and the
	// excess will be charged as a salary deduction.
	Confirm bool `json:"confirm"`
}

type DecideLeaveRequest struct {
	Verdict string `json:"verdict" validate:"required,oneof=APPROVE REJECT"`
}

type LeaveRequestResponse struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employee_id"`
	LeaveType    LeaveType          `json:"leave_type"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	DurationDays decimal.Decimal    `json:"duration_days"`
	Status       LeaveRequestStatus `json:"status"`
	CreatedAt    string             `json:"created_at"`
	DecidedAt    *string            `json:"decided_at,omitempty"`
}

// ApplyLeaveResponse either reports the filed request or, when
// RequiresConfirmation is set, previews the excess charge with nothing written.
type ApplyLeaveResponse struct {
	Request              *LeaveRequestResponse `json:"request,omitempty"`
	RequiresConfirmation bool                  `json:"requires_confirmation"`
	DurationDays         decimal.Decimal       `json:"duration_days"`
	ExcessDays           decimal.Decimal       `json:"excess_days"`
	Deduction            decimal.Decimal       `json:"deduction"`
}

type SnapshotResponse struct {
	EmployeeID    string          `json:"employee_id"`
	TotalDays     decimal.Decimal `json:"total_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
	ConsumedDays  decimal.Decimal `json:"consumed_days"`
	Pending       int             `json:"pending_requests"`
	Approved      int             `json:"approved_requests"`
	Rejected      int             `json:"rejected_requests"`

	Requests []LeaveRequestResponse `json:"requests"`
}

type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (ApplyLeaveResponse, error)
	Decide(ctx context.Context, requestID string, req DecideLeaveRequest) (LeaveRequestResponse, error)
	Snapshot(ctx context.Context, employeeID string) (SnapshotResponse, error)
	Pending(ctx context.Context) ([]LeaveRequestResponse, error)
}
