package dashboard

import (
	"context"
	"time"
)

// EmployeeSummaryStats combines employee counts in a single query
type EmployeeSummaryStats struct {
	Total    int64
	Active   int64
	Inactive int64
	New      int64 // hired within 30 days
}

type DepartmentCount struct {
	DepartementID  *string
	DepartementNom string
	Count          int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	GetEmployeeSummary(ctx context.Context, since time.Time) (*EmployeeSummaryStats, error)

	// GetEmployeesByDepartment counts active employees per department; users
	// without a department are grouped under a nil id.
	GetEmployeesByDepartment(ctx context.Context) ([]DepartmentCount, error)

	// GetAttendanceByStatus counts the records of date per statut
	GetAttendanceByStatus(ctx context.Context, date time.Time) (map[string]int64, error)

	CountPendingLeaves(ctx context.Context) (int64, error)

	// GetPayrollTotal sums salaire_net and paid salaire_net for mois
	GetPayrollTotal(ctx context.Context, mois string) (total float64, paid float64, err error)

	CountOpenOffers(ctx context.Context, day time.Time) (int64, error)
}
