package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts the clock-in row. The (employee, date) pair is unique;
	// duplicates surface as a constraint violation.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no row exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Complete writes the clock-out fields (clock_out, hours, status) of an
	// open row. Returns ErrAttendanceNotFound when the row is missing.
	Complete(ctx context.Context, att Attendance) error

	// GetLatest returns the employee's most recent attendance row.
	GetLatest(ctx context.Context, employeeID string) (Attendance, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}
