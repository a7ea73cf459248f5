package attendance

import (
	"context"

	"github.com/shopspring/decimal"
)

type ClockInRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	// Timestamp is optional RFC3339; the server clock is used when omitted.
	Timestamp string `json:"timestamp" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Timestamp  string `json:"timestamp" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	// Confirm acknowledges a HALF_DAY or ABSENT classification and its
	// leave/salary consequence. Without it the punch-out is not committed.
	Confirm bool `json:"confirm"`
}

type AttendanceResponse struct {
	ID            string           `json:"id"`
	EmployeeID    string           `json:"employee_id"`
	Date          string           `json:"date"`
	ClockIn       string           `json:"clock_in"`
	ClockOut      *string          `json:"clock_out,omitempty"`
	WorkedHours   *decimal.Decimal `json:"worked_hours,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	Status        Status           `json:"status"`
}

// ClockOutResponse either reports the committed record or, when
// RequiresConfirmation is set, previews the classification and its consequence
// without any state having changed.
type ClockOutResponse struct {
	Attendance           *AttendanceResponse `json:"attendance,omitempty"`
	RequiresConfirmation bool                `json:"requires_confirmation"`
	Status               Status              `json:"status"`
	WorkedHours          decimal.Decimal     `json:"worked_hours"`
	LeaveDebit           decimal.Decimal     `json:"leave_debit"`
	Deduction            decimal.Decimal     `json:"deduction"`
}

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)
	History(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	TodayLog(ctx context.Context) ([]AttendanceResponse, error)
}
