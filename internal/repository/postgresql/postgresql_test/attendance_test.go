package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_CreateRejectsDuplicate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestUser(t, ctx, setup.DB, "emp@sgrh.gn", user.RoleEmployee)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, attendance.NewRecord(emp.ID, date))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, created.Statut)
	require.NotNil(t, created.Matricule)
	assert.Equal(t, emp.Matricule, *created.Matricule)

	_, err = repo.Create(ctx, attendance.NewRecord(emp.ID, date))
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)
}

func TestAttendanceRepository_UpsertReplacesRecord(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestUser(t, ctx, setup.DB, "emp@sgrh.gn", user.RoleEmployee)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, attendance.NewRecord(emp.ID, date))
	require.NoError(t, err)

	arrival := time.Date(2024, 3, 15, 8, 20, 0, 0, time.UTC)
	record := attendance.NewRecord(emp.ID, date)
	record.HeureArrivee = &arrival
	record.Statut = attendance.StatusLate
	record.Retard = "0h20m"

	updated, err := repo.Upsert(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, attendance.StatusLate, updated.Statut)
	assert.Equal(t, "0h20m", updated.Retard)
	require.NotNil(t, updated.HeureArrivee)
	assert.True(t, arrival.Equal(*updated.HeureArrivee))
}

func TestAttendanceRepository_CheckInKeepsFirstArrival(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestUser(t, ctx, setup.DB, "emp@sgrh.gn", user.RoleEmployee)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	// the nightly sheet row has no arrival and may be claimed
	_, err := repo.Create(ctx, attendance.NewRecord(emp.ID, date))
	require.NoError(t, err)

	first := time.Date(2024, 3, 15, 7, 50, 0, 0, time.UTC)
	record := attendance.NewRecord(emp.ID, date)
	record.HeureArrivee = &first
	record.Statut = attendance.StatusPresent
	checked, err := repo.CheckIn(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, checked.Statut)

	later := time.Date(2024, 3, 15, 9, 10, 0, 0, time.UTC)
	record.HeureArrivee = &later
	record.Statut = attendance.StatusLate
	_, err = repo.CheckIn(ctx, record)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	stored, err := repo.GetByEmployeeAndDate(ctx, emp.ID, date)
	require.NoError(t, err)
	require.NotNil(t, stored.HeureArrivee)
	assert.True(t, first.Equal(*stored.HeureArrivee))
	assert.Equal(t, attendance.StatusPresent, stored.Statut)
}

func TestAttendanceRepository_ConcurrentCheckIn(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestUser(t, ctx, setup.DB, "emp@sgrh.gn", user.RoleEmployee)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	const attempts = 5
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			arrival := date.Add(7*time.Hour + time.Duration(i)*time.Minute)
			record := attendance.NewRecord(emp.ID, date)
			record.HeureArrivee = &arrival
			record.Statut = attendance.StatusPresent
			_, errs[i] = repo.CheckIn(ctx, record)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAttendanceRepository_DailySheetSkipsExistingAndInactive(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	users := postgresql.NewUserRepository(setup.DB)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	clocked := createTestUser(t, ctx, setup.DB, "a@sgrh.gn", user.RoleEmployee)
	createTestUser(t, ctx, setup.DB, "b@sgrh.gn", user.RoleEmployee)
	inactive := createTestUser(t, ctx, setup.DB, "c@sgrh.gn", user.RoleEmployee)
	require.NoError(t, users.SetActive(ctx, inactive.ID, false))

	present := attendance.NewRecord(clocked.ID, date)
	present.Statut = attendance.StatusPresent
	_, err := repo.Create(ctx, present)
	require.NoError(t, err)

	created, err := repo.CreateAbsentForActiveUsers(ctx, date)
	require.NoError(t, err)
	assert.EqualValues(t, 1, created)

	again, err := repo.CreateAbsentForActiveUsers(ctx, date)
	require.NoError(t, err)
	assert.EqualValues(t, 0, again)

	kept, err := repo.GetByEmployeeAndDate(ctx, clocked.ID, date)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, kept.Statut)
}

func TestAttendanceRepository_ListAndCount(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestUser(t, ctx, setup.DB, "emp@sgrh.gn", user.RoleEmployee)

	for day := 1; day <= 5; day++ {
		_, err := repo.Create(ctx, attendance.NewRecord(emp.ID, time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
	}

	from := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	count, err := repo.CountByStatus(ctx, emp.ID, from, to, attendance.StatusAbsent)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	records, total, err := repo.List(ctx, attendance.AttendanceFilter{EmployeID: &emp.ID, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, records, 2)

	all, _, err := repo.List(ctx, attendance.AttendanceFilter{EmployeID: &emp.ID, Page: 1, Limit: 0})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
