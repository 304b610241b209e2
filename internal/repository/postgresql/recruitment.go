package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/department"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/recruitment"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type offerRepositoryImpl struct {
	db *database.DB
}

func NewOfferRepository(db *database.DB) recruitment.OfferRepository {
	return &offerRepositoryImpl{db: db}
}

const offerSelect = `
	SELECT o.id, o.titre, o.description, o.departement_id, o.type_contrat, o.lieu,
		o.date_limite, o.statut, o.created_at, o.updated_at, d.nom,
		(SELECT COUNT(*) FROM candidats c WHERE c.offre_id = o.id)
	FROM offres o
	LEFT JOIN departements d ON d.id = o.departement_id`

const candidateColumns = `id, offre_id, nom, prenom, email, telephone, lettre, cv, statut, created_at`

func scanOffer(row scanner) (recruitment.Offer, error) {
	var o recruitment.Offer
	err := row.Scan(
		&o.ID,
		&o.Titre,
		&o.Description,
		&o.DepartementID,
		&o.TypeContrat,
		&o.Lieu,
		&o.DateLimite,
		&o.Statut,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.DepartementNom,
		&o.CandidateCount,
	)
	return o, err
}

func scanCandidate(row scanner) (recruitment.Candidate, error) {
	var c recruitment.Candidate
	err := row.Scan(
		&c.ID,
		&c.OffreID,
		&c.Nom,
		&c.Prenom,
		&c.Email,
		&c.Telephone,
		&c.Lettre,
		&c.CV,
		&c.Statut,
		&c.CreatedAt,
	)
	return c, err
}

func (r *offerRepositoryImpl) Create(ctx context.Context, o recruitment.Offer) (recruitment.Offer, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO offres (titre, description, departement_id, type_contrat, lieu, date_limite, statut)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, o.Titre, o.Description, o.DepartementID, o.TypeContrat, o.Lieu, o.DateLimite, string(o.Statut)).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return recruitment.Offer{}, department.ErrDepartmentNotFound
		}
		return recruitment.Offer{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *offerRepositoryImpl) GetByID(ctx context.Context, id string) (recruitment.Offer, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanOffer(q.QueryRow(ctx, offerSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recruitment.Offer{}, recruitment.ErrOfferNotFound
		}
		return recruitment.Offer{}, err
	}

	rows, err := q.Query(ctx, `SELECT `+candidateColumns+` FROM candidats WHERE offre_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return recruitment.Offer{}, err
	}
	defer rows.Close()

	o.Candidats = make([]recruitment.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return recruitment.Offer{}, err
		}
		o.Candidats = append(o.Candidats, c)
	}
	if err := rows.Err(); err != nil {
		return recruitment.Offer{}, err
	}

	return o, nil
}

func (r *offerRepositoryImpl) List(ctx context.Context, filter recruitment.OfferFilter) ([]recruitment.Offer, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereBuilder
	if filter.Statut != nil {
		where.add("o.statut = ?", *filter.Statut)
	}
	if filter.OpenOnly {
		where.add("o.statut = ?", string(recruitment.OfferOpen))
		where.conds = append(where.conds, "(o.date_limite IS NULL OR o.date_limite >= CURRENT_DATE)")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM offres o`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := offerSelect + where.clause() + ` ORDER BY o.created_at DESC`
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

	offers := make([]recruitment.Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, 0, err
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

func (r *offerRepositoryImpl) Update(ctx context.Context, o recruitment.Offer) (recruitment.Offer, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE offres
		SET titre = $2, description = $3, departement_id = $4, type_contrat = $5, lieu = $6,
			date_limite = $7, statut = $8, updated_at = NOW()
		WHERE id = $1
	`, o.ID, o.Titre, o.Description, o.DepartementID, o.TypeContrat, o.Lieu, o.DateLimite, string(o.Statut))
	if err != nil {
		if isForeignKeyViolation(err) {
			return recruitment.Offer{}, department.ErrDepartmentNotFound
		}
		return recruitment.Offer{}, err
	}
	if tag.RowsAffected() == 0 {
		return recruitment.Offer{}, recruitment.ErrOfferNotFound
	}

	return r.GetByID(ctx, o.ID)
}

func (r *offerRepositoryImpl) Delete(ctx context.Context, id string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT cv FROM candidats WHERE offre_id = $1`, id)
	if err != nil {
		return nil, err
	}
	cvs := make([]string, 0)
	for rows.Next() {
		var cv string
		if err := rows.Scan(&cv); err != nil {
			rows.Close()
			return nil, err
		}
		cvs = append(cvs, cv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tag, err := q.Exec(ctx, `DELETE FROM offres WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, recruitment.ErrOfferNotFound
	}
	return cvs, nil
}

func (r *offerRepositoryImpl) AddCandidate(ctx context.Context, c recruitment.Candidate) (recruitment.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanCandidate(q.QueryRow(ctx, `
		INSERT INTO candidats (offre_id, nom, prenom, email, telephone, lettre, cv, statut)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+candidateColumns,
		c.OffreID, c.Nom, c.Prenom, c.Email, c.Telephone, c.Lettre, c.CV, string(c.Statut),
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return recruitment.Candidate{}, recruitment.ErrOfferNotFound
		}
		return recruitment.Candidate{}, err
	}
	return created, nil
}

func (r *offerRepositoryImpl) GetCandidate(ctx context.Context, offreID, candidatID string) (recruitment.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCandidate(q.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidats WHERE id = $1 AND offre_id = $2`, candidatID, offreID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recruitment.Candidate{}, recruitment.ErrCandidateNotFound
		}
		return recruitment.Candidate{}, err
	}
	return c, nil
}

func (r *offerRepositoryImpl) UpdateCandidateStatus(ctx context.Context, offreID, candidatID string, statut recruitment.CandidateStatus) (recruitment.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCandidate(q.QueryRow(ctx, `
		UPDATE candidats SET statut = $3
		WHERE id = $1 AND offre_id = $2
		RETURNING `+candidateColumns,
		candidatID, offreID, string(statut),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recruitment.Candidate{}, recruitment.ErrCandidateNotFound
		}
		return recruitment.Candidate{}, err
	}
	return c, nil
}

func (r *offerRepositoryImpl) DeleteCandidate(ctx context.Context, offreID, candidatID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM candidats WHERE id = $1 AND offre_id = $2`, candidatID, offreID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return recruitment.ErrCandidateNotFound
	}
	return nil
}

func (r *offerRepositoryImpl) HasApplied(ctx context.Context, offreID, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM candidats WHERE offre_id = $1 AND lower(email) = lower($2))
	`, offreID, email).Scan(&exists)
	return exists, err
}
