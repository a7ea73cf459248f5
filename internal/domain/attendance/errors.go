package attendance

import "errors"

var (
	ErrAlreadyClockedIn   = errors.New("you have already clocked in today")
	ErrAlreadyClockedOut  = errors.New("you have already clocked out today")
	ErrNotClockedIn       = errors.New("no clock-in recorded for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
