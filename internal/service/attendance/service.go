package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/document"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	user.UserRepository
	metrics metrics.Recorder
	loc     *time.Location
	now     func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	recorder metrics.Recorder,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		metrics:              recorder,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (s *AttendanceServiceImpl) today() time.Time {
	return attendance.DateOf(s.now(), s.loc)
}

// resolveDate parses an optional YYYY-MM-DD value, defaulting to today.
func (s *AttendanceServiceImpl) resolveDate(value *string) time.Time {
	if value != nil {
		if d, ok := validator.IsValidDate(*value); ok {
			return d
		}
	}
	return s.today()
}

// resolveTime parses an optional clock reading on date, defaulting to now.
func (s *AttendanceServiceImpl) resolveTime(date time.Time, value *string) (time.Time, error) {
	if value == nil || *value == "" {
		return s.now(), nil
	}
	return attendance.ParseClockTime(date, *value, s.loc)
}

// activeEmployee loads the employee and rejects deactivated accounts.
func (s *AttendanceServiceImpl) activeEmployee(ctx context.Context, id string) (user.User, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, attendance.ErrEmployeeNotFound
		}
		return user.User{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !u.Actif {
		return user.User{}, attendance.ErrEmployeeInactive
	}
	return u, nil
}

// recordFor returns the stored record of (employeID, date) or a fresh Absent one.
func (s *AttendanceServiceImpl) recordFor(ctx context.Context, employeID string, date time.Time) (attendance.Attendance, error) {
	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.NewRecord(employeID, date), nil
		}
		return attendance.Attendance{}, err
	}
	return record, nil
}

func (s *AttendanceServiceImpl) toList(records []attendance.Attendance, total int64, filter attendance.AttendanceFilter) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	return s.toList(records, total, filter), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, auth.ErrUnauthenticated
	}

	filter.EmployeID = &principal.UserID
	filter.DepartementID = nil
	return s.ListAttendance(ctx, filter)
}

// CreateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.activeEmployee(ctx, req.EmployeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	record := attendance.NewRecord(req.EmployeID, date)

	if req.HeureArrivee != nil {
		arrival, err := attendance.ParseClockTime(date, *req.HeureArrivee, s.loc)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		record.CheckIn(arrival, s.loc)
	}
	if req.HeureDepart != nil {
		departure, err := attendance.ParseClockTime(date, *req.HeureDepart, s.loc)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if err := record.CheckOut(departure); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return attendance.ToResponse(created), nil
}

// CreateDailySheet implements attendance.AttendanceService. A zero date means today.
func (s *AttendanceServiceImpl) CreateDailySheet(ctx context.Context, date time.Time) (attendance.DailySheetResponse, error) {
	if date.IsZero() {
		date = s.today()
	}

	created, err := s.AttendanceRepository.CreateAbsentForActiveUsers(ctx, date)
	if err != nil {
		return attendance.DailySheetResponse{}, fmt.Errorf("failed to create daily sheet: %w", err)
	}
	s.metrics.RecordDailySheet(created)

	return attendance.DailySheetResponse{
		Date:    date.Format("2006-01-02"),
		Created: created,
	}, nil
}

// MarkArrival implements attendance.AttendanceService. It overwrites any
// earlier arrival so managers can correct a record.
func (s *AttendanceServiceImpl) MarkArrival(ctx context.Context, req attendance.MarkArrivalRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.activeEmployee(ctx, req.EmployeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := s.resolveDate(req.Date)
	present := req.Present == nil || *req.Present

	var saved attendance.Attendance
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.recordFor(txCtx, req.EmployeID, date)
		if err != nil {
			return err
		}

		if present {
			arrival, err := s.resolveTime(date, req.Heure)
			if err != nil {
				return err
			}
			record.CheckIn(arrival, s.loc)
		} else {
			record.MarkAbsent()
		}

		saved, err = s.AttendanceRepository.Upsert(txCtx, record)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark arrival: %w", err)
	}

	if present {
		s.metrics.RecordClockIn(string(saved.Statut))
	}
	return attendance.ToResponse(saved), nil
}

// MarkDeparture implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkDeparture(ctx context.Context, req attendance.MarkDepartureRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := s.resolveDate(req.Date)
	saved, err := s.checkOut(ctx, req.EmployeID, date, req.Heure)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(saved), nil
}

func (s *AttendanceServiceImpl) checkOut(ctx context.Context, employeID string, date time.Time, heure *string) (attendance.Attendance, error) {
	var saved attendance.Attendance
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.AttendanceRepository.GetByEmployeeAndDate(txCtx, employeID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotCheckedIn
			}
			return err
		}

		departure, err := s.resolveTime(date, heure)
		if err != nil {
			return err
		}
		if err := record.CheckOut(departure); err != nil {
			return err
		}

		saved, err = s.AttendanceRepository.Upsert(txCtx, record)
		return err
	})
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to mark departure: %w", err)
	}
	return saved, nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, auth.ErrUnauthenticated
	}
	if _, err := s.activeEmployee(ctx, principal.UserID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	date := attendance.DateOf(now, s.loc)

	var saved attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.recordFor(txCtx, principal.UserID, date)
		if err != nil {
			return err
		}
		if record.HeureArrivee != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		record.CheckIn(now, s.loc)
		saved, err = s.AttendanceRepository.CheckIn(txCtx, record)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to clock in: %w", err)
	}

	s.metrics.RecordClockIn(string(saved.Statut))
	slog.Debug("clock in", "employe_id", principal.UserID, "statut", saved.Statut, "retard", saved.Retard)
	return attendance.ToResponse(saved), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, auth.ErrUnauthenticated
	}

	saved, err := s.checkOut(ctx, principal.UserID, s.today(), nil)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(saved), nil
}

// ExportAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]byte, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.Page, filter.Limit = 1, 0

	records, _, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			deref(r.Matricule),
			deref(r.EmployeNom),
			deref(r.EmployePrenom),
			deref(r.DepartementNom),
			r.Date.Format("2006-01-02"),
			s.clock(r.HeureArrivee),
			s.clock(r.HeureDepart),
			string(r.Statut),
			r.Retard,
			r.HeuresTravaillees,
		})
	}

	return document.RenderXLSX(document.Sheet{
		Name: "Pointages",
		Headers: []string{
			"Matricule", "Nom", "Prénom", "Département", "Date",
			"Arrivée", "Départ", "Statut", "Retard", "Heures travaillées",
		},
		Rows: rows,
	})
}

func (s *AttendanceServiceImpl) clock(t *time.Time) string {
	if t == nil {
		return attendance.NoValue
	}
	return t.In(s.loc).Format("15:04:05")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return attendance.ErrAttendanceNotFound
	}
	if err := s.AttendanceRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}
