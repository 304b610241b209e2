package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/training"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) training.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

const sessionColumns = `
	f.id, f.titre, f.description, f.formateur, f.lieu, f.date_debut, f.date_fin,
	f.capacite, f.created_at, f.updated_at`

func scanSession(row scanner) (training.Session, error) {
	var s training.Session
	err := row.Scan(
		&s.ID,
		&s.Titre,
		&s.Description,
		&s.Formateur,
		&s.Lieu,
		&s.DateDebut,
		&s.DateFin,
		&s.Capacite,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, s training.Session) (training.Session, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO formations (titre, description, formateur, lieu, date_debut, date_fin, capacite)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, s.Titre, s.Description, s.Formateur, s.Lieu, s.DateDebut, s.DateFin, s.Capacite).Scan(&id)
	if err != nil {
		return training.Session{}, err
	}

	return r.GetByID(ctx, id)
}

// participants loads the participants of the given sessions keyed by session id.
func (r *sessionRepositoryImpl) participants(ctx context.Context, ids []string) (map[string][]training.Participant, error) {
	q := GetQuerier(ctx, r.db)

	result := make(map[string][]training.Participant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := q.Query(ctx, `
		SELECT fp.formation_id, u.id, u.nom, u.prenom, u.matricule, fp.inscrit_le
		FROM formation_participants fp
		JOIN users u ON u.id = fp.employe_id
		WHERE fp.formation_id = ANY($1::uuid[])
		ORDER BY fp.inscrit_le
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID string
		var p training.Participant
		if err := rows.Scan(&sessionID, &p.EmployeID, &p.Nom, &p.Prenom, &p.Matricule, &p.InscritLe); err != nil {
			return nil, err
		}
		result[sessionID] = append(result[sessionID], p)
	}
	return result, rows.Err()
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (training.Session, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSession(q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM formations f WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return training.Session{}, training.ErrSessionNotFound
		}
		return training.Session{}, err
	}

	participants, err := r.participants(ctx, []string{s.ID})
	if err != nil {
		return training.Session{}, err
	}
	s.Participants = participants[s.ID]

	return s, nil
}

func (r *sessionRepositoryImpl) List(ctx context.Context, filter training.SessionFilter) ([]training.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereBuilder
	if filter.Upcoming {
		where.conds = append(where.conds, "f.date_fin >= CURRENT_DATE")
	}
	if filter.Search != nil && *filter.Search != "" {
		where.add("(f.titre ILIKE ? OR f.formateur ILIKE ?)", "%"+*filter.Search+"%")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM formations f`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + sessionColumns + ` FROM formations f` + where.clause() + ` ORDER BY f.date_debut DESC`
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

	sessions := make([]training.Session, 0)
	ids := make([]string, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	participants, err := r.participants(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range sessions {
		sessions[i].Participants = participants[sessions[i].ID]
	}

	return sessions, total, nil
}

func (r *sessionRepositoryImpl) Update(ctx context.Context, s training.Session) (training.Session, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE formations
		SET titre = $2, description = $3, formateur = $4, lieu = $5, date_debut = $6,
			date_fin = $7, capacite = $8, updated_at = NOW()
		WHERE id = $1
	`, s.ID, s.Titre, s.Description, s.Formateur, s.Lieu, s.DateDebut, s.DateFin, s.Capacite)
	if err != nil {
		return training.Session{}, err
	}
	if tag.RowsAffected() == 0 {
		return training.Session{}, training.ErrSessionNotFound
	}

	return r.GetByID(ctx, s.ID)
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM formations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return training.ErrSessionNotFound
	}
	return nil
}

// AddParticipant must run inside a transaction: the session row lock
// serializes concurrent enrollments.
func (r *sessionRepositoryImpl) AddParticipant(ctx context.Context, sessionID, employeID string) error {
	q := GetQuerier(ctx, r.db)

	var capacite int
	err := q.QueryRow(ctx, `SELECT capacite FROM formations WHERE id = $1 FOR UPDATE`, sessionID).Scan(&capacite)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return training.ErrSessionNotFound
		}
		return err
	}

	if capacite > 0 {
		var count int
		if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM formation_participants WHERE formation_id = $1`, sessionID).Scan(&count); err != nil {
			return err
		}
		if count >= capacite {
			return training.ErrSessionFull
		}
	}

	_, err = q.Exec(ctx, `INSERT INTO formation_participants (formation_id, employe_id) VALUES ($1, $2)`, sessionID, employeID)
	if err != nil {
		switch {
		case isUniqueViolation(err, ""):
			return training.ErrAlreadyEnrolled
		case isForeignKeyViolation(err):
			return training.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

func (r *sessionRepositoryImpl) RemoveParticipant(ctx context.Context, sessionID, employeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM formation_participants WHERE formation_id = $1 AND employe_id = $2`, sessionID, employeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return training.ErrNotEnrolled
	}
	return nil
}
