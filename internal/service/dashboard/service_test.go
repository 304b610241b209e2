package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	since  time.Time
	day    time.Time
	mois   string
	failOn string
}

func (f *fakeDashboardRepo) fail(name string) error {
	if f.failOn == name {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeDashboardRepo) GetEmployeeSummary(ctx context.Context, since time.Time) (*dashboard.EmployeeSummaryStats, error) {
	f.since = since
	return &dashboard.EmployeeSummaryStats{Total: 12, Active: 10, Inactive: 2, New: 1}, f.fail("summary")
}

func (f *fakeDashboardRepo) GetEmployeesByDepartment(ctx context.Context) ([]dashboard.DepartmentCount, error) {
	id := "dep-1"
	return []dashboard.DepartmentCount{
		{DepartementID: &id, DepartementNom: "Finance", Count: 6},
		{DepartementNom: "Sans département", Count: 4},
	}, nil
}

func (f *fakeDashboardRepo) GetAttendanceByStatus(ctx context.Context, date time.Time) (map[string]int64, error) {
	f.day = date
	return map[string]int64{"Présent": 5, "Retard": 1, "Absent": 3, "Congé": 1}, nil
}

func (f *fakeDashboardRepo) CountPendingLeaves(ctx context.Context) (int64, error) {
	return 4, nil
}

func (f *fakeDashboardRepo) GetPayrollTotal(ctx context.Context, mois string) (float64, float64, error) {
	f.mois = mois
	return 3000000, 1200000, f.fail("payroll")
}

func (f *fakeDashboardRepo) CountOpenOffers(ctx context.Context, day time.Time) (int64, error) {
	return 2, nil
}

func newService(repo *fakeDashboardRepo) *DashboardServiceImpl {
	svc := NewDashboardService(repo, time.UTC).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 5, 20, 23, 30, 0, 0, time.UTC) }
	return svc
}

func TestGetDashboard(t *testing.T) {
	repo := &fakeDashboardRepo{}
	res, err := newService(repo).GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), res.Employes.Total)
	assert.Len(t, res.Employes.ParDepartement, 2)
	assert.Equal(t, "2024-05-20", res.Pointages.Date)
	assert.InDelta(t, 60.0, res.Pointages.TauxPresence, 1e-9)
	assert.Equal(t, int64(4), res.Conges.EnAttente)
	assert.Equal(t, "2024-05", res.Salaires.Mois)
	assert.Equal(t, 1200000.0, res.Salaires.MontantPaye)
	assert.Equal(t, int64(2), res.Recrutement.OffresOuvertes)

	assert.Equal(t, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC), repo.since)
	assert.Equal(t, "2024-05", repo.mois)
}

func TestGetDashboard_UsesLocalDate(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := newService(repo)
	svc.loc = time.FixedZone("UTC+2", 2*3600)

	res, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-05-21", res.Pointages.Date)
}

func TestGetDashboard_PropagatesErrors(t *testing.T) {
	for _, name := range []string{"summary", "payroll"} {
		_, err := newService(&fakeDashboardRepo{failOn: name}).GetDashboard(context.Background())
		assert.Error(t, err, name)
	}
}
