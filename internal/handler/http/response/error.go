package response

import (
	"errors"
	"net/http"

	"github.com/worklane/ledger-backend-go/internal/domain/attendance"
	"github.com/worklane/ledger-backend-go/internal/domain/employee"
	"github.com/worklane/ledger-backend-go/internal/domain/leave"
	"github.com/worklane/ledger-backend-go/internal/domain/payroll"
	"github.com/worklane/ledger-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "No clock-in recorded today", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyDecided):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrAccrualNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrNoOvertimeRecorded):
		BadRequest(w, "No overtime to process", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
