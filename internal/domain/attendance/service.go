package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ListAttendance retrieves records with filters (Admin, RH, Manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// CreateAttendance explicitly creates a record; duplicates are rejected
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// CreateDailySheet creates Absent records for active users without one
	CreateDailySheet(ctx context.Context, date time.Time) (DailySheetResponse, error)

	// MarkArrival records (or corrects) an employee's arrival
	MarkArrival(ctx context.Context, req MarkArrivalRequest) (AttendanceResponse, error)

	// MarkDeparture records an employee's departure
	MarkDeparture(ctx context.Context, req MarkDepartureRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves the caller's records
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ClockIn and ClockOut act on the caller's record for today
	ClockIn(ctx context.Context) (AttendanceResponse, error)
	ClockOut(ctx context.Context) (AttendanceResponse, error)

	// ExportAttendance renders the filtered records as an xlsx workbook
	ExportAttendance(ctx context.Context, filter AttendanceFilter) ([]byte, error)

	DeleteAttendance(ctx context.Context, id string) error
}
