package postgresql

import (
	"context"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/dashboard"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/leave"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/payroll"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/recruitment"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetEmployeeSummary returns total, active, inactive and new counts in a single query
func (r *dashboardRepositoryImpl) GetEmployeeSummary(ctx context.Context, since time.Time) (*dashboard.EmployeeSummaryStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE actif) AS active,
			COUNT(*) FILTER (WHERE NOT actif) AS inactive,
			COUNT(*) FILTER (WHERE date_embauche >= $1) AS new
		FROM users
	`

	var stats dashboard.EmployeeSummaryStats
	err := q.QueryRow(ctx, query, since).Scan(&stats.Total, &stats.Active, &stats.Inactive, &stats.New)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *dashboardRepositoryImpl) GetEmployeesByDepartment(ctx context.Context) ([]dashboard.DepartmentCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT d.id, COALESCE(d.nom, 'Sans département'), COUNT(u.id)
		FROM users u
		LEFT JOIN departements d ON d.id = u.departement_id
		WHERE u.actif = TRUE
		GROUP BY d.id, d.nom
		ORDER BY COUNT(u.id) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]dashboard.DepartmentCount, 0)
	for rows.Next() {
		var c dashboard.DepartmentCount
		if err := rows.Scan(&c.DepartementID, &c.DepartementNom, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *dashboardRepositoryImpl) GetAttendanceByStatus(ctx context.Context, date time.Time) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT statut, COUNT(*) FROM pointages WHERE date = $1 GROUP BY statut`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var statut string
		var count int64
		if err := rows.Scan(&statut, &count); err != nil {
			return nil, err
		}
		counts[statut] = count
	}
	return counts, rows.Err()
}

func (r *dashboardRepositoryImpl) CountPendingLeaves(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM conges WHERE statut = $1`, string(leave.StatusPending)).Scan(&count)
	return count, err
}

func (r *dashboardRepositoryImpl) GetPayrollTotal(ctx context.Context, mois string) (float64, float64, error) {
	q := GetQuerier(ctx, r.db)

	var total, paid float64
	err := q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(salaire_net), 0),
			COALESCE(SUM(salaire_net) FILTER (WHERE statut = $2), 0)
		FROM salaires
		WHERE mois = $1
	`, mois, string(payroll.StatusPaid)).Scan(&total, &paid)
	return total, paid, err
}

func (r *dashboardRepositoryImpl) CountOpenOffers(ctx context.Context, day time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM offres
		WHERE statut = $1 AND (date_limite IS NULL OR date_limite >= $2)
	`, string(recruitment.OfferOpen), day).Scan(&count)
	return count, err
}
