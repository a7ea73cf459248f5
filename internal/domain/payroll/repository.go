package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// PayrollRepository mutators fold the change and the net pay recomputation
// into one statement and return the resulting row.
type PayrollRepository interface {
	// GetOrCreate returns the employee's accrual row, provisioning it from the
	// directory's basic pay on first touch.
	GetOrCreate(ctx context.Context, employeeID string, basicPay decimal.Decimal) (Accrual, error)

	// SetAllowance overwrites the allowance.
	SetAllowance(ctx context.Context, employeeID string, amount decimal.Decimal) (Accrual, error)

	// CreditDeduction adds to the accumulated deduction.
	CreditDeduction(ctx context.Context, employeeID string, amount decimal.Decimal) (Accrual, error)

	// CreditOvertimePay adds to the accumulated overtime pay.
	CreditOvertimePay(ctx context.Context, employeeID string, amount decimal.Decimal) (Accrual, error)

	// RecomputeNetPay re-derives and persists net pay from the stored
	// components, returning the resulting row.
	RecomputeNetPay(ctx context.Context, employeeID string) (Accrual, error)
}
