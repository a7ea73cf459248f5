package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type AccrualResponse struct {
	EmployeeID  string          `json:"employee_id"`
	BasicPay    decimal.Decimal `json:"basic_pay"`
	Allowance   decimal.Decimal `json:"allowance"`
	Deduction   decimal.Decimal `json:"deduction"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	NetPay      decimal.Decimal `json:"net_pay"`
}

type ApplyOvertimeResponse struct {
	AccrualResponse
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
}

type PayrollService interface {
	// ApplyAllowance sets the allowance to the flat fraction of basic pay.
	// Repeated calls overwrite rather than accumulate.
	ApplyAllowance(ctx context.Context, employeeID string) (AccrualResponse, error)

	// ApplyOvertime pays out the overtime hours on the employee's most recent
	// attendance record.
	ApplyOvertime(ctx context.Context, employeeID string) (ApplyOvertimeResponse, error)

	NetPay(ctx context.Context, employeeID string) (AccrualResponse, error)
}
