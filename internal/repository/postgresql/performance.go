package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/performance"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type evaluationRepositoryImpl struct {
	db *database.DB
}

func NewEvaluationRepository(db *database.DB) performance.EvaluationRepository {
	return &evaluationRepositoryImpl{db: db}
}

const evaluationSelect = `
	SELECT p.id, p.employe_id, p.evaluateur_id, p.periode, p.objectifs, p.note,
		p.commentaire, p.date_evaluation, p.created_at, p.updated_at,
		u.nom, u.prenom,
		CASE WHEN ev.id IS NULL THEN NULL ELSE ev.prenom || ' ' || ev.nom END
	FROM performances p
	JOIN users u ON u.id = p.employe_id
	LEFT JOIN users ev ON ev.id = p.evaluateur_id`

func scanEvaluation(row scanner) (performance.Evaluation, error) {
	var e performance.Evaluation
	err := row.Scan(
		&e.ID,
		&e.EmployeID,
		&e.EvaluateurID,
		&e.Periode,
		&e.Objectifs,
		&e.Note,
		&e.Commentaire,
		&e.DateEvaluation,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.EmployeNom,
		&e.EmployePrenom,
		&e.EvaluateurNom,
	)
	return e, err
}

func (r *evaluationRepositoryImpl) Create(ctx context.Context, e performance.Evaluation) (performance.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO performances (employe_id, evaluateur_id, periode, objectifs, note, commentaire, date_evaluation)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, e.EmployeID, e.EvaluateurID, e.Periode, e.Objectifs, e.Note, e.Commentaire, e.DateEvaluation).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return performance.Evaluation{}, performance.ErrEmployeeNotFound
		}
		return performance.Evaluation{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *evaluationRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEvaluation(q.QueryRow(ctx, evaluationSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.Evaluation{}, performance.ErrEvaluationNotFound
		}
		return performance.Evaluation{}, err
	}
	return e, nil
}

func (r *evaluationRepositoryImpl) List(ctx context.Context, filter performance.EvaluationFilter) ([]performance.Evaluation, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereBuilder
	if filter.EmployeID != nil {
		where.add("p.employe_id = ?", *filter.EmployeID)
	}
	if filter.Periode != nil {
		where.add("p.periode = ?", *filter.Periode)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM performances p`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := evaluationSelect + where.clause() + ` ORDER BY p.date_evaluation DESC, p.created_at DESC`
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

	evaluations := make([]performance.Evaluation, 0)
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, 0, err
		}
		evaluations = append(evaluations, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return evaluations, total, nil
}

func (r *evaluationRepositoryImpl) Update(ctx context.Context, e performance.Evaluation) (performance.Evaluation, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE performances
		SET periode = $2, objectifs = $3, note = $4, commentaire = $5, date_evaluation = $6, updated_at = NOW()
		WHERE id = $1
	`, e.ID, e.Periode, e.Objectifs, e.Note, e.Commentaire, e.DateEvaluation)
	if err != nil {
		return performance.Evaluation{}, err
	}
	if tag.RowsAffected() == 0 {
		return performance.Evaluation{}, performance.ErrEvaluationNotFound
	}

	return r.GetByID(ctx, e.ID)
}

func (r *evaluationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM performances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrEvaluationNotFound
	}
	return nil
}
