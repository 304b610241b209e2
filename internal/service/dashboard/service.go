package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/dashboard"
	"golang.org/x/sync/errgroup"
)

// newHireWindow is how far back a hire date counts as new.
const newHireWindow = 30

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, loc *time.Location) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// GetDashboard returns combined dashboard data using parallel goroutines,
// one query each.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	now := s.now()
	today := attendance.DateOf(now, s.loc)
	mois := today.Format("2006-01")
	since := today.AddDate(0, 0, -newHireWindow)

	var (
		employees   dashboard.EmployeeSummaryResponse
		byDept      []dashboard.DepartmentCountResponse
		pointages   dashboard.AttendanceResponse
		conges      dashboard.LeaveResponse
		salaires    dashboard.PayrollResponse
		recrutement dashboard.RecruitmentResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employee summary (total, active, inactive, new)
	g.Go(func() error {
		stats, err := s.GetEmployeeSummary(gCtx, since)
		if err != nil {
			return fmt.Errorf("employee summary: %w", err)
		}
		employees = dashboard.EmployeeSummaryResponse{
			Total:    stats.Total,
			Actifs:   stats.Active,
			Inactifs: stats.Inactive,
			Nouveaux: stats.New,
		}
		return nil
	})

	// 2. Active employees per department
	g.Go(func() error {
		counts, err := s.GetEmployeesByDepartment(gCtx)
		if err != nil {
			return fmt.Errorf("employees by department: %w", err)
		}
		byDept = make([]dashboard.DepartmentCountResponse, 0, len(counts))
		for _, c := range counts {
			byDept = append(byDept, dashboard.DepartmentCountResponse{
				DepartementID:  c.DepartementID,
				DepartementNom: c.DepartementNom,
				Nombre:         c.Count,
			})
		}
		return nil
	})

	// 3. Today's attendance per statut
	g.Go(func() error {
		counts, err := s.GetAttendanceByStatus(gCtx, today)
		if err != nil {
			return fmt.Errorf("attendance by status: %w", err)
		}
		pointages = dashboard.AttendanceResponse{
			Date:    today.Format("2006-01-02"),
			Present: counts[string(attendance.StatusPresent)],
			Retard:  counts[string(attendance.StatusLate)],
			Absent:  counts[string(attendance.StatusAbsent)],
			Conge:   counts[string(attendance.StatusLeave)],
		}
		if total := pointages.Present + pointages.Retard + pointages.Absent + pointages.Conge; total > 0 {
			pointages.TauxPresence = float64(pointages.Present+pointages.Retard) / float64(total) * 100
		}
		return nil
	})

	// 4. Pending leave requests
	g.Go(func() error {
		n, err := s.CountPendingLeaves(gCtx)
		if err != nil {
			return fmt.Errorf("pending leaves: %w", err)
		}
		conges = dashboard.LeaveResponse{EnAttente: n}
		return nil
	})

	// 5. Payroll of the current month
	g.Go(func() error {
		total, paid, err := s.GetPayrollTotal(gCtx, mois)
		if err != nil {
			return fmt.Errorf("payroll total: %w", err)
		}
		salaires = dashboard.PayrollResponse{Mois: mois, MasseTotal: total, MontantPaye: paid}
		return nil
	})

	// 6. Offers still accepting applications
	g.Go(func() error {
		n, err := s.CountOpenOffers(gCtx, today)
		if err != nil {
			return fmt.Errorf("open offers: %w", err)
		}
		recrutement = dashboard.RecruitmentResponse{OffresOuvertes: n}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	employees.ParDepartement = byDept
	return &dashboard.DashboardResponse{
		Employes:    employees,
		Pointages:   pointages,
		Conges:      conges,
		Salaires:    salaires,
		Recrutement: recrutement,
		UpdatedAt:   now.Format(time.RFC3339),
	}, nil
}
