package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT p.id, p.employe_id, p.date, p.heure_arrivee, p.heure_depart, p.statut,
		p.retard, p.heures_travaillees, p.created_at, p.updated_at,
		u.nom, u.prenom, u.matricule, d.nom
	FROM pointages p
	JOIN users u ON u.id = p.employe_id
	LEFT JOIN departements d ON d.id = u.departement_id`

func scanAttendance(row scanner) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeID,
		&a.Date,
		&a.HeureArrivee,
		&a.HeureDepart,
		&a.Statut,
		&a.Retard,
		&a.HeuresTravaillees,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeNom,
		&a.EmployePrenom,
		&a.Matricule,
		&a.DepartementNom,
	)
	return a, err
}

func mapAttendanceWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "uq_pointages_employe_date"):
		return attendance.ErrAttendanceExists
	case isForeignKeyViolation(err):
		return attendance.ErrEmployeeNotFound
	}
	return err
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO pointages (employe_id, date, heure_arrivee, heure_depart, statut, retard, heures_travaillees)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, a.EmployeID, a.Date, a.HeureArrivee, a.HeureDepart, string(a.Statut), a.Retard, a.HeuresTravaillees).Scan(&id)
	if err != nil {
		return attendance.Attendance{}, mapAttendanceWriteError(err)
	}

	return r.GetByID(ctx, id)
}

func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO pointages (employe_id, date, heure_arrivee, heure_depart, statut, retard, heures_travaillees)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employe_id, date) DO UPDATE SET
			heure_arrivee = EXCLUDED.heure_arrivee,
			heure_depart = EXCLUDED.heure_depart,
			statut = EXCLUDED.statut,
			retard = EXCLUDED.retard,
			heures_travaillees = EXCLUDED.heures_travaillees,
			updated_at = NOW()
		RETURNING id
	`, a.EmployeID, a.Date, a.HeureArrivee, a.HeureDepart, string(a.Statut), a.Retard, a.HeuresTravaillees).Scan(&id)
	if err != nil {
		return attendance.Attendance{}, mapAttendanceWriteError(err)
	}

	return r.GetByID(ctx, id)
}

// CheckIn relies on the conflict row lock: a concurrent arrival committed
// first leaves the WHERE clause false and no row is returned.
func (r *attendanceRepositoryImpl) CheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO pointages (employe_id, date, heure_arrivee, heure_depart, statut, retard, heures_travaillees)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employe_id, date) DO UPDATE SET
			heure_arrivee = EXCLUDED.heure_arrivee,
			heure_depart = EXCLUDED.heure_depart,
			statut = EXCLUDED.statut,
			retard = EXCLUDED.retard,
			heures_travaillees = EXCLUDED.heures_travaillees,
			updated_at = NOW()
		WHERE pointages.heure_arrivee IS NULL
		RETURNING id
	`, a.EmployeID, a.Date, a.HeureArrivee, a.HeureDepart, string(a.Statut), a.Retard, a.HeuresTravaillees).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, mapAttendanceWriteError(err)
	}

	return r.GetByID(ctx, id)
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE p.employe_id = $1 AND p.date = $2`, employeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereBuilder
	if filter.EmployeID != nil {
		where.add("p.employe_id = ?", *filter.EmployeID)
	}
	if filter.DepartementID != nil {
		where.add("u.departement_id = ?", *filter.DepartementID)
	}
	if filter.Date != nil {
		where.add("p.date = ?::date", *filter.Date)
	}
	if filter.From != nil {
		where.add("p.date >= ?::date", *filter.From)
	}
	if filter.To != nil {
		where.add("p.date <= ?::date", *filter.To)
	}
	if filter.Statut != nil {
		where.add("p.statut = ?", *filter.Statut)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM pointages p JOIN users u ON u.id = p.employe_id` + where.clause()
	if err := q.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := attendanceSelect + where.clause() + ` ORDER BY p.date DESC, u.nom, u.prenom`
	args := where.args
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", where.next(), where.next()+1)
		args = append(args, filter.Limit, offset(filter.Page, filter.Limit))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM pointages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) CreateAbsentForActiveUsers(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		INSERT INTO pointages (employe_id, date, statut, retard, heures_travaillees)
		SELECT u.id, $1::date, $2::text, $3::text, $3::text
		FROM users u
		WHERE u.actif = TRUE
		ON CONFLICT (employe_id, date) DO NOTHING
	`, date, string(attendance.StatusAbsent), attendance.NoValue)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *attendanceRepositoryImpl) CountByStatus(ctx context.Context, employeID string, from, to time.Time, statut attendance.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM pointages
		WHERE employe_id = $1 AND date BETWEEN $2 AND $3 AND statut = $4
	`, employeID, from, to, string(statut)).Scan(&count)
	return count, err
}
