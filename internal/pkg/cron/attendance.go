package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
)

// DailySheetCreator is satisfied by the attendance service.
type DailySheetCreator interface {
	CreateDailySheet(ctx context.Context, date time.Time) (attendance.DailySheetResponse, error)
}

type AttendanceJobs struct {
	sheets DailySheetCreator
	loc    *time.Location
	now    func() time.Time
}

func NewAttendanceJobs(sheets DailySheetCreator, loc *time.Location) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		sheets: sheets,
		loc:    loc,
		now:    time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("create_daily_attendance_sheet", 1*time.Hour, j.CreateDailySheet)
}

// CreateDailySheet opens today's sheet once the arrival threshold has passed.
// Users who clocked in already keep their record; the others are marked Absent.
func (j *AttendanceJobs) CreateDailySheet(ctx context.Context) error {
	now := j.now().In(j.loc)
	if now.Hour() < attendance.ThresholdHour {
		return nil
	}

	date := attendance.DateOf(now, j.loc)
	res, err := j.sheets.CreateDailySheet(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to create daily sheet: %w", err)
	}

	if res.Created > 0 {
		slog.Info("Cron: Daily attendance sheet created", "date", res.Date, "absent", res.Created)
	}
	return nil
}
