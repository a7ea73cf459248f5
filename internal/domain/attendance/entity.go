package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent  Status = "PRESENT"
	StatusHalfDay  Status = "HALF_DAY"
	StatusAbsent   Status = "ABSENT"
	StatusOvertime Status = "OVERTIME"
)

// Attendance is one employee-day. A row is created on clock-in with a
// provisional PRESENT status; clock-out fills the derived fields exactly once.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	ClockIn       time.Time
	ClockOut      *time.Time
	WorkedHours   *decimal.Decimal
	OvertimeHours *decimal.Decimal
	Status        Status
}

// Closed reports whether the day has already been clocked out.
func (a Attendance) Closed() bool {
	return a.ClockOut != nil
}
