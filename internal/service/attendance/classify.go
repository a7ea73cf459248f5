package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/worklane/ledger-backend-go/internal/domain/attendance"
	"github.com/worklane/ledger-backend-go/internal/domain/payroll"
)

var (
	fullDayHours = decimal.NewFromInt(8)
	presentFloor = decimal.NewFromInt(6)
	halfDayFloor = decimal.NewFromInt(4)

	fullDayDebit = decimal.NewFromInt(1)
	halfDayDebit = decimal.RequireFromString("0.5")
)

// Classify maps worked hours to a day status. The returned overtime is the
// portion beyond the standard working day and is zero unless the status is
// OVERTIME.
func Classify(workedHours decimal.Decimal) (attendance.Status, decimal.Decimal) {
	switch {
	case workedHours.GreaterThan(fullDayHours):
		return attendance.StatusOvertime, workedHours.Sub(fullDayHours)
	case workedHours.GreaterThan(presentFloor):
		return attendance.StatusPresent, decimal.Zero
	case workedHours.GreaterThanOrEqual(halfDayFloor):
		return attendance.StatusHalfDay, decimal.Zero
	default:
		return attendance.StatusAbsent, decimal.Zero
	}
}

// Consequence is what committing a shortfall day costs the employee. Exactly
// one of LeaveDebit and Deduction is non-zero for HALF_DAY and ABSENT days.
type Consequence struct {
	LeaveDebit        decimal.Decimal
	Deduction         decimal.Decimal
	NeedsConfirmation bool
}

// ConsequenceOf prices a day status against the current leave balance. A
// shortfall is covered from the balance when it holds enough, otherwise it
// becomes a salary deduction at the daily rate.
func ConsequenceOf(status attendance.Status, balance, basicPay decimal.Decimal) Consequence {
	switch status {
	case attendance.StatusHalfDay:
		if balance.GreaterThanOrEqual(halfDayDebit) {
			return Consequence{LeaveDebit: halfDayDebit, Deduction: decimal.Zero, NeedsConfirmation: true}
		}
		return Consequence{LeaveDebit: decimal.Zero, Deduction: payroll.DailyRate(basicPay).Mul(halfDayDebit), NeedsConfirmation: true}
	case attendance.StatusAbsent:
		if balance.GreaterThanOrEqual(fullDayDebit) {
			return Consequence{LeaveDebit: fullDayDebit, Deduction: decimal.Zero, NeedsConfirmation: true}
		}
		return Consequence{LeaveDebit: decimal.Zero, Deduction: payroll.DailyRate(basicPay), NeedsConfirmation: true}
	default:
		return Consequence{LeaveDebit: decimal.Zero, Deduction: decimal.Zero, NeedsConfirmation: false}
	}
}
