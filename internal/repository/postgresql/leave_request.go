package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/leave"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveSelect = `
	SELECT c.id, c.employe_id, c.type_conge, c.date_debut, c.date_fin, c.nombre_jours,
		c.motif, c.statut, c.commentaire, c.traite_par, c.traite_le, c.created_at, c.updated_at,
		u.nom, u.prenom, u.matricule
	FROM conges c
	JOIN users u ON u.id = c.employe_id`

func scanLeaveRequest(row scanner) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeID,
		&lr.TypeConge,
		&lr.DateDebut,
		&lr.DateFin,
		&lr.NombreJours,
		&lr.Motif,
		&lr.Statut,
		&lr.Commentaire,
		&lr.TraitePar,
		&lr.TraiteLe,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeNom,
		&lr.EmployePrenom,
		&lr.Matricule,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO conges (employe_id, type_conge, date_debut, date_fin, nombre_jours, motif, statut)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		request.EmployeID,
		request.TypeConge,
		request.DateDebut,
		request.DateFin,
		request.NombreJours,
		request.Motif,
		string(request.Statut),
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.LeaveRequest{}, leave.ErrEmployeeNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereBuilder
	if filter.EmployeID != nil {
		where.add("c.employe_id = ?", *filter.EmployeID)
	}
	if filter.Statut != nil {
		where.add("c.statut = ?", *filter.Statut)
	}
	if filter.TypeConge != nil {
		where.add("c.type_conge = ?", *filter.TypeConge)
	}
	if filter.From != nil {
		where.add("c.date_fin >= ?::date", *filter.From)
	}
	if filter.To != nil {
		where.add("c.date_debut <= ?::date", *filter.To)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM conges c`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := leaveSelect + where.clause() + ` ORDER BY c.created_at DESC`
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

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE conges
		SET type_conge = $2, date_debut = $3, date_fin = $4, nombre_jours = $5, motif = $6, updated_at = NOW()
		WHERE id = $1
	`, request.ID, request.TypeConge, request.DateDebut, request.DateFin, request.NombreJours, request.Motif)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if tag.RowsAffected() == 0 {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}

	return r.GetByID(ctx, request.ID)
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	// only pending requests change statut
	tag, err := q.Exec(ctx, `
		UPDATE conges
		SET statut = $2, commentaire = $3, traite_par = $4, traite_le = $5, updated_at = NOW()
		WHERE id = $1 AND statut = $6
	`, request.ID, string(request.Statut), request.Commentaire, request.TraitePar, request.TraiteLe, string(leave.StatusPending))
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if tag.RowsAffected() == 0 {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return r.GetByID(ctx, request.ID)
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM conges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeID string, from, to time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conges
			WHERE employe_id = $1
				AND statut IN ($4, $5)
				AND date_debut <= $3 AND date_fin >= $2
				AND ($6 = '' OR id::text <> $6)
		)
	`, employeID, from, to, string(leave.StatusPending), string(leave.StatusApproved), excludeID).Scan(&exists)
	return exists, err
}
