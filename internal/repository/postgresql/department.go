package postgresql

import (
	"context"
	"errors"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/department"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentSelect = `
	SELECT d.id, d.nom, d.code, d.description, d.responsable_id, d.created_at, d.updated_at,
		CASE WHEN r.id IS NULL THEN NULL ELSE r.prenom || ' ' || r.nom END,
		(SELECT COUNT(*) FROM users e WHERE e.departement_id = d.id)
	FROM departements d
	LEFT JOIN users r ON r.id = d.responsable_id`

func scanDepartment(row scanner) (department.Department, error) {
	var d department.Department
	err := row.Scan(
		&d.ID,
		&d.Nom,
		&d.Code,
		&d.Description,
		&d.ResponsableID,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.ResponsableNom,
		&d.EmployeeCount,
	)
	return d, err
}

func mapDepartmentWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "departements_code_key"):
		return department.ErrDepartmentCodeExists
	case isForeignKeyViolation(err):
		return department.ErrResponsableNotFound
	case errors.Is(err, pgx.ErrNoRows):
		return department.ErrDepartmentNotFound
	}
	return err
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO departements (nom, code, description, responsable_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, d.Nom, d.Code, d.Description, d.ResponsableID).Scan(&id)
	if err != nil {
		return department.Department{}, mapDepartmentWriteError(err)
	}

	return r.GetByID(ctx, id)
}

func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, departmentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return d, nil
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, departmentSelect+` ORDER BY d.nom`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]department.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE departements
		SET nom = $2, code = $3, description = $4, responsable_id = $5, updated_at = NOW()
		WHERE id = $1
	`, d.ID, d.Nom, d.Code, d.Description, d.ResponsableID)
	if err != nil {
		return department.Department{}, mapDepartmentWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return department.Department{}, department.ErrDepartmentNotFound
	}

	return r.GetByID(ctx, d.ID)
}

func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) CountEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE departement_id = $1`, id).Scan(&count)
	return count, err
}
