package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/payroll"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type paymentRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payroll.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

const paymentSelect = `
	SELECT s.id, s.employe_id, s.mois, s.salaire_base, s.primes, s.heures_supplementaires,
		s.deductions, s.jours_absence, s.salaire_net, s.statut, s.date_paiement,
		s.created_at, s.updated_at,
		u.nom, u.prenom, u.matricule, u.poste, d.nom
	FROM salaires s
	JOIN users u ON u.id = s.employe_id
	LEFT JOIN departements d ON d.id = u.departement_id`

func scanPayment(row scanner) (payroll.Payment, error) {
	var p payroll.Payment
	err := row.Scan(
		&p.ID,
		&p.EmployeID,
		&p.Mois,
		&p.SalaireBase,
		&p.Primes,
		&p.HeuresSupplementaires,
		&p.Deductions,
		&p.JoursAbsence,
		&p.SalaireNet,
		&p.Statut,
		&p.DatePaiement,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.EmployeNom,
		&p.EmployePrenom,
		&p.Matricule,
		&p.Poste,
		&p.DepartementNom,
	)
	return p, err
}

func (r *paymentRepositoryImpl) Create(ctx context.Context, p payroll.Payment) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO salaires (
			employe_id, mois, salaire_base, primes, heures_supplementaires,
			deductions, jours_absence, salaire_net, statut
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		p.EmployeID,
		p.Mois,
		p.SalaireBase,
		p.Primes,
		p.HeuresSupplementaires,
		p.Deductions,
		p.JoursAbsence,
		p.SalaireNet,
		string(p.Statut),
	).Scan(&id)
	if err != nil {
		switch {
		case isUniqueViolation(err, "uq_salaires_employe_mois"):
			return payroll.Payment{}, payroll.ErrPaymentAlreadyExists
		case isForeignKeyViolation(err):
			return payroll.Payment{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Payment{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayment(q.QueryRow(ctx, paymentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payment{}, payroll.ErrPaymentNotFound
		}
		return payroll.Payment{}, err
	}
	return p, nil
}

func (r *paymentRepositoryImpl) List(ctx context.Context, filter payroll.PaymentFilter) ([]payroll.Payment, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereBuilder
	if filter.EmployeID != nil {
		where.add("s.employe_id = ?", *filter.EmployeID)
	}
	if filter.Mois != nil {
		where.add("s.mois = ?", *filter.Mois)
	}
	if filter.Statut != nil {
		where.add("s.statut = ?", *filter.Statut)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM salaires s`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := paymentSelect + where.clause() + ` ORDER BY s.mois DESC, u.nom, u.prenom`
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

	payments := make([]payroll.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *paymentRepositoryImpl) Update(ctx context.Context, p payroll.Payment) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE salaires SET
			salaire_base = $2, primes = $3, heures_supplementaires = $4, deductions = $5,
			jours_absence = $6, salaire_net = $7, statut = $8, date_paiement = $9, updated_at = NOW()
		WHERE id = $1
	`,
		p.ID,
		p.SalaireBase,
		p.Primes,
		p.HeuresSupplementaires,
		p.Deductions,
		p.JoursAbsence,
		p.SalaireNet,
		string(p.Statut),
		p.DatePaiement,
	)
	if err != nil {
		return payroll.Payment{}, err
	}
	if tag.RowsAffected() == 0 {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}

	return r.GetByID(ctx, p.ID)
}

func (r *paymentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salaires WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPaymentNotFound
	}
	return nil
}
