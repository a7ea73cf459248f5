package payroll

import "github.com/shopspring/decimal"

const (
	// WorkingDaysPerMonth is the fixed divisor for daily rates.
	WorkingDaysPerMonth = 25
	// WorkDayHours is the length of a standard working day.
	WorkDayHours = 8
	// AllowanceRate is the flat allowance as a fraction of basic pay.
	AllowanceRate = "0.10"
)

// Accrual is the running payroll position for an employee. NetPay is always
// basic + allowance + overtime - deduction; mutations recompute it in the same
// statement.
type Accrual struct {
	EmployeeID  string          `json:"employee_id"`
	BasicPay    decimal.Decimal `json:"basic_pay"`
	Allowance   decimal.Decimal `json:"allowance"`
	Deduction   decimal.Decimal `json:"deduction"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	NetPay      decimal.Decimal `json:"net_pay"`
}

// DailyRate is one working day's worth of basic pay.
func DailyRate(basic decimal.Decimal) decimal.Decimal {
	return basic.Div(decimal.NewFromInt(WorkingDaysPerMonth))
}

// HourlyOvertimeRate is the per-hour rate paid for hours beyond the standard
// working day.
func HourlyOvertimeRate(basic decimal.Decimal) decimal.Decimal {
	return DailyRate(basic).Div(decimal.NewFromInt(WorkDayHours))
}

// AllowanceFor is the flat allowance derived from basic pay.
func AllowanceFor(basic decimal.Decimal) decimal.Decimal {
	return basic.Mul(decimal.RequireFromString(AllowanceRate))
}
