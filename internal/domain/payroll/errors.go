package payroll

import "errors"

var (
	ErrAccrualNotFound    = errors.New("payroll accrual not found for employee")
	ErrNoOvertimeRecorded = errors.New("no overtime to process")
)
