package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnnualLeaveDays is the yearly allowance every employee starts with.
const AnnualLeaveDays = 42

type LeaveType string

const (
	TypeCasual LeaveType = "CASUAL"
	TypeSick   LeaveType = "SICK"
	TypeEarned LeaveType = "EARNED"
	TypePaid   LeaveType = "PAID"
)

type LeaveRequestStatus string

const (
	StatusPending  LeaveRequestStatus = "PENDING"
	StatusApproved LeaveRequestStatus = "APPROVED"
	StatusRejected LeaveRequestStatus = "REJECTED"
)

// LeaveBalance is the employee's unconsumed leave in days. Half days are
// allowed and the value never goes below zero.
type LeaveBalance struct {
	EmployeeID    string
	RemainingDays decimal.Decimal
}

// LeaveRequest transitions from PENDING to APPROVED or REJECTED exactly once
// and is immutable afterwards.
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	Type         LeaveType
	StartDate    time.Time
	EndDate      time.Time
	DurationDays decimal.Decimal
	Status       LeaveRequestStatus
	CreatedAt    time.Time
	DecidedAt    *time.Time
}
