package leave

import (
	"context"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/leave"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/testutil"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, r := range f.requests {
		if filter.EmployeID != nil && r.EmployeID != *filter.EmployeID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	if f.requests[req.ID].Statut != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeLeaveRepo) HasOverlap(ctx context.Context, employeID string, from, to time.Time, excludeID string) (bool, error) {
	for _, r := range f.requests {
		if r.ID == excludeID || r.EmployeID != employeID || r.Statut == leave.StatusRefused {
			continue
		}
		if !r.DateDebut.After(to) && !r.DateFin.Before(from) {
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	svc        leave.LeaveService
	attendance *testutil.AttendanceStore
	emp        user.User
	manager    user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := testutil.NewUserStore()
	emp := users.Put(user.User{Nom: "Camara", Prenom: "Kadiatou", Email: "k@sgrh.gn", Role: user.RoleEmployee, Actif: true})
	manager := users.Put(user.User{Nom: "Touré", Prenom: "Sekou", Email: "s@sgrh.gn", Role: user.RoleManager, Actif: true})
	store := testutil.NewAttendanceStore(users)

	svc := NewLeaveService(testutil.Tx{}, &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}, store, users,
		metrics.NewCollector(prometheus.NewRegistry()))
	return &fixture{svc: svc, attendance: store, emp: emp, manager: manager}
}

func TestCreateRequest_CountsInclusiveDays(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.emp.ID, user.RoleEmployee)

	res, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		TypeConge: "Annuel", DateDebut: "2024-01-01", DateFin: "2024-01-03", Motif: "<b>Vacances</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.NombreJours)
	assert.Equal(t, "En attente", res.Statut)
	assert.Equal(t, "Vacances", res.Motif)

	_, err = f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		TypeConge: "Maladie", DateDebut: "2024-01-03", DateFin: "2024-01-05",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)

	_, err = f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		TypeConge: "Annuel", DateDebut: "2024-02-10", DateFin: "2024-02-01",
	})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	other := f.manager.ID
	_, err = f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		TypeConge: "Annuel", DateDebut: "2024-03-01", DateFin: "2024-03-01", EmployeID: &other,
	})
	assert.ErrorIs(t, err, leave.ErrNotOwner)
}

func TestApproveRequest_MarksAttendance(t *testing.T) {
	f := newFixture(t)
	empCtx := testutil.ContextAs(t, f.emp.ID, user.RoleEmployee)
	mgrCtx := testutil.ContextAs(t, f.manager.ID, user.RoleManager)

	created, err := f.svc.CreateRequest(empCtx, leave.CreateLeaveRequest{
		TypeConge: "Annuel", DateDebut: "2024-01-01", DateFin: "2024-01-03",
	})
	require.NoError(t, err)

	_, err = f.svc.ApproveRequest(empCtx, leave.DecisionRequest{ID: created.ID})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	approved, err := f.svc.ApproveRequest(mgrCtx, leave.DecisionRequest{ID: created.ID, Commentaire: "Bon congé"})
	require.NoError(t, err)
	assert.Equal(t, "Approuvé", approved.Statut)
	require.NotNil(t, approved.TraitePar)
	assert.Equal(t, f.manager.ID, *approved.TraitePar)

	assert.Equal(t, 3, f.attendance.Len())
	for _, day := range []int{1, 2, 3} {
		record, err := f.attendance.GetByEmployeeAndDate(context.Background(), f.emp.ID, time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "Congé", string(record.Statut))
	}

	_, err = f.svc.RejectRequest(mgrCtx, leave.DecisionRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	motif := "changement"
	_, err = f.svc.UpdateRequest(empCtx, leave.UpdateLeaveRequest{ID: created.ID, Motif: &motif})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	assert.ErrorIs(t, f.svc.DeleteRequest(empCtx, created.ID), leave.ErrLeaveRequestAlreadyProcessed)
}

func TestRejectAndOwnership(t *testing.T) {
	f := newFixture(t)
	empCtx := testutil.ContextAs(t, f.emp.ID, user.RoleEmployee)
	mgrCtx := testutil.ContextAs(t, f.manager.ID, user.RoleManager)
	strangerCtx := testutil.ContextAs(t, uuid.NewString(), user.RoleEmployee)

	created, err := f.svc.CreateRequest(empCtx, leave.CreateLeaveRequest{
		TypeConge: "Maladie", DateDebut: "2024-04-01", DateFin: "2024-04-02",
	})
	require.NoError(t, err)

	_, err = f.svc.GetRequest(strangerCtx, created.ID)
	assert.ErrorIs(t, err, leave.ErrNotOwner)

	_, err = f.svc.GetRequest(mgrCtx, created.ID)
	assert.NoError(t, err)

	fin := "2024-04-05"
	updated, err := f.svc.UpdateRequest(empCtx, leave.UpdateLeaveRequest{ID: created.ID, DateFin: &fin})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.NombreJours)

	rejected, err := f.svc.RejectRequest(mgrCtx, leave.DecisionRequest{ID: created.ID, Commentaire: "Période chargée"})
	require.NoError(t, err)
	assert.Equal(t, "Refusé", rejected.Statut)
	assert.Equal(t, 0, f.attendance.Len())

	mine, err := f.svc.MyRequests(empCtx, leave.LeaveFilter{})
	require.NoError(t, err)
	assert.Len(t, mine.Requests, 1)
}

func TestDeleteRequest_OwnerPending(t *testing.T) {
	f := newFixture(t)
	empCtx := testutil.ContextAs(t, f.emp.ID, user.RoleEmployee)

	created, err := f.svc.CreateRequest(empCtx, leave.CreateLeaveRequest{
		TypeConge: "Annuel", DateDebut: "2024-05-01", DateFin: "2024-05-01",
	})
	require.NoError(t, err)

	strangerCtx := testutil.ContextAs(t, uuid.NewString(), user.RoleEmployee)
	assert.ErrorIs(t, f.svc.DeleteRequest(strangerCtx, created.ID), leave.ErrNotOwner)
	assert.NoError(t, f.svc.DeleteRequest(empCtx, created.ID))
	assert.ErrorIs(t, f.svc.DeleteRequest(empCtx, created.ID), leave.ErrLeaveRequestNotFound)
}
