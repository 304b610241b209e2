package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a record; ErrAttendanceExists when (employe, date) is taken.
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// Upsert inserts or replaces the record of (employe, date).
	Upsert(ctx context.Context, a Attendance) (Attendance, error)

	// CheckIn inserts or replaces the record of (employe, date) only while it
	// has no arrival; ErrAlreadyCheckedIn otherwise.
	CheckIn(ctx context.Context, a Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeID string, date time.Time) (Attendance, error)

	// List returns every match when filter.Limit is 0.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	Delete(ctx context.Context, id string) error

	// CreateAbsentForActiveUsers inserts an Absent record for every active
	// user lacking one on date and returns how many were created.
	CreateAbsentForActiveUsers(ctx context.Context, date time.Time) (int64, error)

	// CountByStatus counts records of one employee in [from, to].
	CountByStatus(ctx context.Context, employeID string, from, to time.Time, statut Status) (int64, error)
}
