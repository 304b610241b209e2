package testutil

import (
	"context"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/google/uuid"
)

// AttendanceStore is an in-memory attendance.AttendanceRepository.
type AttendanceStore struct {
	records map[string]attendance.Attendance
	users   *UserStore
}

func NewAttendanceStore(users *UserStore) *AttendanceStore {
	return &AttendanceStore{records: make(map[string]attendance.Attendance), users: users}
}

func recordKey(employeID string, date time.Time) string {
	return employeID + "|" + date.Format("2006-01-02")
}

func (f *AttendanceStore) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := f.records[recordKey(a.EmployeID, a.Date)]; ok {
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	}
	return f.Upsert(ctx, a)
}

func (f *AttendanceStore) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	k := recordKey(a.EmployeID, a.Date)
	if existing, ok := f.records[k]; ok {
		a.ID = existing.ID
	} else if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.records[k] = a
	return a, nil
}

func (f *AttendanceStore) CheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if existing, ok := f.records[recordKey(a.EmployeID, a.Date)]; ok && existing.HeureArrivee != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	return f.Upsert(ctx, a)
}

func (f *AttendanceStore) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *AttendanceStore) GetByEmployeeAndDate(ctx context.Context, employeID string, date time.Time) (attendance.Attendance, error) {
	r, ok := f.records[recordKey(employeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *AttendanceStore) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	out := make([]attendance.Attendance, 0)
	for _, r := range f.records {
		if filter.EmployeID != nil && r.EmployeID != *filter.EmployeID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *AttendanceStore) Delete(ctx context.Context, id string) error {
	for k, r := range f.records {
		if r.ID == id {
			delete(f.records, k)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *AttendanceStore) CreateAbsentForActiveUsers(ctx context.Context, date time.Time) (int64, error) {
	active, _ := f.users.ListActive(ctx)
	var created int64
	for _, u := range active {
		if _, ok := f.records[recordKey(u.ID, date)]; ok {
			continue
		}
		f.records[recordKey(u.ID, date)] = attendance.NewRecord(u.ID, date)
		created++
	}
	return created, nil
}

func (f *AttendanceStore) CountByStatus(ctx context.Context, employeID string, from, to time.Time, statut attendance.Status) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.EmployeID == employeID && r.Statut == statut && !r.Date.Before(from) && !r.Date.After(to) {
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored records.
func (f *AttendanceStore) Len() int {
	return len(f.records)
}
