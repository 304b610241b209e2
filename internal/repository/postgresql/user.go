package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/department"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

const userColumns = `
	u.id, u.nom, u.prenom, u.email, u.password_hash, u.role, u.matricule,
	u.telephone, u.adresse, u.poste, u.departement_id, u.salaire_base,
	u.type_contrat, u.date_embauche, u.photo, u.actif, u.created_at, u.updated_at,
	d.nom`

func scanUser(row scanner) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Nom,
		&u.Prenom,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Matricule,
		&u.Telephone,
		&u.Adresse,
		&u.Poste,
		&u.DepartementID,
		&u.SalaireBase,
		&u.TypeContrat,
		&u.DateEmbauche,
		&u.Photo,
		&u.Actif,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DepartementNom,
	)
	return u, err
}

// mapUserWriteError translates constraint violations into domain errors.
func mapUserWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "users_email_key"):
		return user.ErrEmailExists
	case isUniqueViolation(err, "users_matricule_key"):
		return user.ErrMatriculeExists
	case isForeignKeyViolation(err):
		return department.ErrDepartmentNotFound
	case errors.Is(err, pgx.ErrNoRows):
		return user.ErrUserNotFound
	}
	return err
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH u AS (
			INSERT INTO users (
				nom, prenom, email, password_hash, role, telephone, adresse, poste,
				departement_id, salaire_base, type_contrat, date_embauche, actif
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING *
		)
		SELECT ` + userColumns + `
		FROM u
		LEFT JOIN departements d ON d.id = u.departement_id
	`

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.Nom,
		newUser.Prenom,
		newUser.Email,
		newUser.PasswordHash,
		string(newUser.Role),
		newUser.Telephone,
		newUser.Adresse,
		newUser.Poste,
		newUser.DepartementID,
		newUser.SalaireBase,
		newUser.TypeContrat,
		newUser.DateEmbauche,
		newUser.Actif,
	))
	if err != nil {
		return user.User{}, mapUserWriteError(err)
	}

	return created, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN departements d ON d.id = u.departement_id
		WHERE u.id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN departements d ON d.id = u.departement_id
		WHERE u.email = $1`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereBuilder
	if filter.DepartementID != nil {
		where.add("u.departement_id = ?", *filter.DepartementID)
	}
	if filter.Role != nil {
		where.add("u.role = ?", *filter.Role)
	}
	if filter.Actif != nil {
		where.add("u.actif = ?", *filter.Actif)
	}
	if filter.Search != nil && *filter.Search != "" {
		where.add("(u.nom ILIKE ? OR u.prenom ILIKE ? OR u.email ILIKE ? OR u.matricule ILIKE ?)", "%"+*filter.Search+"%")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users u` + where.clause()
	if err := q.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN departements d ON d.id = u.departement_id` +
		where.clause() + `
		ORDER BY u.nom, u.prenom`
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

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepositoryImpl) ListActive(ctx context.Context) ([]user.User, error) {
	actif := true
	users, _, err := r.List(ctx, user.UserFilter{Actif: &actif})
	return users, err
}

func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH u AS (
			UPDATE users SET
				nom = $2, prenom = $3, email = $4, role = $5, telephone = $6,
				adresse = $7, poste = $8, departement_id = $9, salaire_base = $10,
				type_contrat = $11, date_embauche = $12, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + userColumns + `
		FROM u
		LEFT JOIN departements d ON d.id = u.departement_id
	`

	updated, err := scanUser(q.QueryRow(ctx, query,
		u.ID,
		u.Nom,
		u.Prenom,
		u.Email,
		string(u.Role),
		u.Telephone,
		u.Adresse,
		u.Poste,
		u.DepartementID,
		u.SalaireBase,
		u.TypeContrat,
		u.DateEmbauche,
	))
	if err != nil {
		return user.User{}, mapUserWriteError(err)
	}
	return updated, nil
}

func (r *userRepositoryImpl) exec(ctx context.Context, query string, args ...interface{}) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
}

func (r *userRepositoryImpl) UpdatePhoto(ctx context.Context, id string, photo string) error {
	return r.exec(ctx, `UPDATE users SET photo = $2, updated_at = NOW() WHERE id = $1`, id, photo)
}

func (r *userRepositoryImpl) SetActive(ctx context.Context, id string, actif bool) error {
	return r.exec(ctx, `UPDATE users SET actif = $2, updated_at = NOW() WHERE id = $1`, id, actif)
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *userRepositoryImpl) CountActiveAdmins(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	// FOR UPDATE is not allowed with aggregates; lock the rows in a subquery
	query := `
		SELECT COUNT(*) FROM (
			SELECT id FROM users WHERE role = 'Admin' AND actif = TRUE FOR UPDATE
		) admins
	`
	err := q.QueryRow(ctx, query).Scan(&count)
	return count, err
}

// registrationLockKey identifies the bootstrap registration advisory lock.
const registrationLockKey int64 = 0x53475248

func (r *userRepositoryImpl) LockRegistration(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, registrationLockKey)
	return err
}
