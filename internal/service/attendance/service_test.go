package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/testutil"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	svc   *AttendanceServiceImpl
	repo  *testutil.AttendanceStore
	users *testutil.UserStore
	emp   user.User
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := testutil.NewUserStore()
	emp := users.Put(user.User{Nom: "Condé", Prenom: "Alpha", Email: "alpha@sgrh.gn", Role: user.RoleEmployee, Actif: true})
	repo := testutil.NewAttendanceStore(users)

	f := &fixture{repo: repo, users: users, emp: emp}
	svc := NewAttendanceService(testutil.Tx{}, repo, users, metrics.NewCollector(prometheus.NewRegistry()), time.UTC).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc
	return f
}

func TestClockIn_LateByOneSecond(t *testing.T) {
	f := newFixture(t)
	f.clock = time.Date(2024, 1, 10, 8, 0, 1, 0, time.UTC)
	ctx := testutil.ContextAs(t, f.emp.ID, user.RoleEmployee)

	res, err := f.svc.ClockIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Retard", res.Statut)
	assert.Equal(t, "0h0m", res.Retard)
	assert.Equal(t, "2024-01-10", res.Date)

	_, err = f.svc.ClockIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestClockOut(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.emp.ID, user.RoleEmployee)

	f.clock = time.Date(2024, 1, 10, 7, 45, 0, 0, time.UTC)
	_, err := f.svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	res, err := f.svc.ClockIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Présent", res.Statut)
	assert.Equal(t, "-", res.Retard)

	f.clock = time.Date(2024, 1, 10, 16, 50, 30, 0, time.UTC)
	res, err = f.svc.ClockOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9h5m", res.HeuresTravaillees)
}

// staleReads hides committed records from the pre-check, as a concurrent
// request that read before the other one committed would see them.
type staleReads struct {
	*testutil.AttendanceStore
}

func (staleReads) GetByEmployeeAndDate(context.Context, string, time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func TestClockIn_ConcurrentArrivalKeepsFirst(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.emp.ID, user.RoleEmployee)

	f.clock = time.Date(2024, 1, 10, 7, 45, 0, 0, time.UTC)
	_, err := f.svc.ClockIn(ctx)
	require.NoError(t, err)

	racing := NewAttendanceService(testutil.Tx{}, staleReads{f.repo}, f.users, metrics.NewCollector(prometheus.NewRegistry()), time.UTC).(*AttendanceServiceImpl)
	racing.now = func() time.Time { return time.Date(2024, 1, 10, 9, 15, 0, 0, time.UTC) }

	_, err = racing.ClockIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	stored, err := f.repo.GetByEmployeeAndDate(context.Background(), f.emp.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stored.HeureArrivee)
	assert.Equal(t, f.clock, stored.HeureArrivee.UTC())
	assert.Equal(t, attendance.StatusPresent, stored.Statut)
}

func TestClockIn_InactiveEmployee(t *testing.T) {
	f := newFixture(t)
	f.clock = time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC)
	require.NoError(t, f.users.SetActive(context.Background(), f.emp.ID, false))

	_, err := f.svc.ClockIn(testutil.ContextAs(t, f.emp.ID, user.RoleEmployee))
	assert.ErrorIs(t, err, attendance.ErrEmployeeInactive)
}

func TestCreateAttendance_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	arrivee := "08:30"

	req := attendance.CreateAttendanceRequest{EmployeID: f.emp.ID, Date: "2024-01-10", HeureArrivee: &arrivee}
	res, err := f.svc.CreateAttendance(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Retard", res.Statut)
	assert.Equal(t, "0h30m", res.Retard)

	_, err = f.svc.CreateAttendance(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)

	_, err = f.svc.CreateAttendance(ctx, attendance.CreateAttendanceRequest{EmployeID: uuid.NewString(), Date: "2024-01-10"})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)
}

func TestCreateAttendance_DepartureBeforeArrival(t *testing.T) {
	f := newFixture(t)
	arrivee, depart := "09:00", "08:00"

	_, err := f.svc.CreateAttendance(context.Background(), attendance.CreateAttendanceRequest{
		EmployeID: f.emp.ID, Date: "2024-01-10", HeureArrivee: &arrivee, HeureDepart: &depart,
	})
	assert.ErrorIs(t, err, attendance.ErrDepartureBeforeArrival)
}

func TestMarkArrival_CorrectionAndAbsent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := "2024-01-10"

	late := "09:30:59"
	res, err := f.svc.MarkArrival(ctx, attendance.MarkArrivalRequest{EmployeID: f.emp.ID, Date: &date, Heure: &late})
	require.NoError(t, err)
	assert.Equal(t, "1h30m", res.Retard)

	onTime := "07:55"
	res, err = f.svc.MarkArrival(ctx, attendance.MarkArrivalRequest{EmployeID: f.emp.ID, Date: &date, Heure: &onTime})
	require.NoError(t, err)
	assert.Equal(t, "Présent", res.Statut)
	assert.Equal(t, 1, f.repo.Len())

	depart := "17:00"
	res, err = f.svc.MarkDeparture(ctx, attendance.MarkDepartureRequest{EmployeID: f.emp.ID, Date: &date, Heure: &depart})
	require.NoError(t, err)
	assert.Equal(t, "9h5m", res.HeuresTravaillees)

	absent := false
	res, err = f.svc.MarkArrival(ctx, attendance.MarkArrivalRequest{EmployeID: f.emp.ID, Date: &date, Present: &absent})
	require.NoError(t, err)
	assert.Equal(t, "Absent", res.Statut)
	assert.Nil(t, res.HeureArrivee)
	assert.Nil(t, res.HeureDepart)
	assert.Equal(t, "-", res.HeuresTravaillees)
	assert.Equal(t, "-", res.Retard)
}

func TestCreateDailySheet(t *testing.T) {
	f := newFixture(t)
	f.users.Put(user.User{Nom: "Bah", Prenom: "Mariam", Email: "mariam@sgrh.gn", Role: user.RoleEmployee, Actif: true})
	f.users.Put(user.User{Nom: "Sylla", Prenom: "Moussa", Email: "moussa@sgrh.gn", Role: user.RoleEmployee, Actif: false})
	f.clock = time.Date(2024, 1, 10, 7, 50, 0, 0, time.UTC)

	_, err := f.svc.ClockIn(testutil.ContextAs(t, f.emp.ID, user.RoleEmployee))
	require.NoError(t, err)

	res, err := f.svc.CreateDailySheet(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", res.Date)
	assert.Equal(t, int64(1), res.Created)

	again, err := f.svc.CreateDailySheet(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.Created)

	mine, err := f.svc.GetMyAttendance(testutil.ContextAs(t, f.emp.ID, user.RoleEmployee), attendance.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, mine.Attendances, 1)
	assert.Equal(t, "Présent", mine.Attendances[0].Statut)
}

func TestExportAttendance(t *testing.T) {
	f := newFixture(t)
	f.clock = time.Date(2024, 1, 10, 8, 15, 0, 0, time.UTC)
	_, err := f.svc.ClockIn(testutil.ContextAs(t, f.emp.ID, user.RoleEmployee))
	require.NoError(t, err)

	out, err := f.svc.ExportAttendance(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Pointages")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "08:15:00", rows[1][5])
	assert.Equal(t, "Retard", rows[1][7])
	assert.Equal(t, "0h15m", rows[1][8])
}
