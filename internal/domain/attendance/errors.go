package attendance

import "errors"

// Attendance domain errors
var (
	// Clock errors
	ErrAlreadyCheckedIn       = errors.New("you have already checked in today")
	ErrNotCheckedIn           = errors.New("you have not checked in yet")
	ErrDepartureBeforeArrival = errors.New("departure cannot precede arrival")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance record already exists for this employee and date")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeInactive   = errors.New("employee account is deactivated")
)
