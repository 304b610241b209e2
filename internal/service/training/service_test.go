package training

import (
	"context"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/training"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/testutil"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions map[string]training.Session
	users    *testutil.UserStore
}

func (f *fakeSessionRepo) Create(ctx context.Context, s training.Session) (training.Session, error) {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (training.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return training.Session{}, training.ErrSessionNotFound
	}
	s.Participants = append([]training.Participant(nil), s.Participants...)
	return s, nil
}

func (f *fakeSessionRepo) List(ctx context.Context, filter training.SessionFilter) ([]training.Session, int64, error) {
	out := make([]training.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, s training.Session) (training.Session, error) {
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return training.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) AddParticipant(ctx context.Context, sessionID, employeID string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return training.ErrSessionNotFound
	}
	if s.HasParticipant(employeID) {
		return training.ErrAlreadyEnrolled
	}
	if s.IsFull(len(s.Participants)) {
		return training.ErrSessionFull
	}
	u, _ := f.users.Get(employeID)
	s.Participants = append(s.Participants, training.Participant{
		EmployeID: employeID, Nom: u.Nom, Prenom: u.Prenom, Matricule: u.Matricule, InscritLe: time.Now(),
	})
	f.sessions[sessionID] = s
	return nil
}

func (f *fakeSessionRepo) RemoveParticipant(ctx context.Context, sessionID, employeID string) error {
	s := f.sessions[sessionID]
	for i, p := range s.Participants {
		if p.EmployeID == employeID {
			s.Participants = append(s.Participants[:i], s.Participants[i+1:]...)
			f.sessions[sessionID] = s
			return nil
		}
	}
	return training.ErrNotEnrolled
}

type fixture struct {
	svc   training.TrainingService
	users *testutil.UserStore
	rh    user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := testutil.NewUserStore()
	rh := users.Put(user.User{Nom: "Condé", Prenom: "Mariama", Email: "rh@sgrh.gn", Role: user.RoleRH, Actif: true})
	svc := NewTrainingService(testutil.Tx{}, &fakeSessionRepo{sessions: make(map[string]training.Session), users: users}, users)
	return &fixture{svc: svc, users: users, rh: rh}
}

func (f *fixture) employee(t *testing.T, email string) (user.User, context.Context) {
	t.Helper()
	u := f.users.Put(user.User{Nom: "Employé", Prenom: email, Email: email, Role: user.RoleEmployee, Actif: true})
	return u, testutil.ContextAs(t, u.ID, user.RoleEmployee)
}

func TestEnroll_Capacity(t *testing.T) {
	f := newFixture(t)
	rhCtx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	session, err := f.svc.Create(rhCtx, training.CreateSessionRequest{
		Titre: "Excel avancé", DateDebut: "2024-06-03", DateFin: "2024-06-05", Capacite: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, session.PlacesRestantes)
	assert.Equal(t, 2, *session.PlacesRestantes)

	_, ctxA := f.employee(t, "a@sgrh.gn")
	_, ctxB := f.employee(t, "b@sgrh.gn")
	_, ctxC := f.employee(t, "c@sgrh.gn")

	res, err := f.svc.Enroll(ctxA, session.ID)
	require.NoError(t, err)
	assert.Len(t, res.Participants, 1)

	_, err = f.svc.Enroll(ctxA, session.ID)
	assert.ErrorIs(t, err, training.ErrAlreadyEnrolled)

	res, err = f.svc.Enroll(ctxB, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, *res.PlacesRestantes)

	_, err = f.svc.Enroll(ctxC, session.ID)
	assert.ErrorIs(t, err, training.ErrSessionFull)

	res, err = f.svc.Unenroll(ctxA, session.ID)
	require.NoError(t, err)
	assert.Len(t, res.Participants, 1)

	_, err = f.svc.Enroll(ctxC, session.ID)
	assert.NoError(t, err)
}

func TestEnroll_UnlimitedCapacity(t *testing.T) {
	f := newFixture(t)
	rhCtx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	session, err := f.svc.Create(rhCtx, training.CreateSessionRequest{Titre: "Sécurité", DateDebut: "2024-07-01", DateFin: "2024-07-01"})
	require.NoError(t, err)
	assert.Nil(t, session.PlacesRestantes)

	for _, email := range []string{"x@sgrh.gn", "y@sgrh.gn", "z@sgrh.gn"} {
		_, ctx := f.employee(t, email)
		_, err := f.svc.Enroll(ctx, session.ID)
		require.NoError(t, err)
	}
}

func TestParticipants_ManagedByRH(t *testing.T) {
	f := newFixture(t)
	rhCtx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	session, err := f.svc.Create(rhCtx, training.CreateSessionRequest{Titre: "Paie", DateDebut: "2024-09-10", DateFin: "2024-09-12", Capacite: 5})
	require.NoError(t, err)

	emp, _ := f.employee(t, "p@sgrh.gn")
	res, err := f.svc.AddParticipant(rhCtx, session.ID, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.Matricule, res.Participants[0].Matricule)

	_, err = f.svc.AddParticipant(rhCtx, session.ID, uuid.NewString())
	assert.ErrorIs(t, err, training.ErrEmployeeNotFound)

	one := 1
	_, err = f.svc.Update(rhCtx, training.UpdateSessionRequest{ID: session.ID, Capacite: &one})
	assert.NoError(t, err)

	_, err = f.svc.RemoveParticipant(rhCtx, session.ID, emp.ID)
	require.NoError(t, err)
	_, err = f.svc.RemoveParticipant(rhCtx, session.ID, emp.ID)
	assert.ErrorIs(t, err, training.ErrNotEnrolled)
}

func TestUpdate_Rules(t *testing.T) {
	f := newFixture(t)
	rhCtx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	session, err := f.svc.Create(rhCtx, training.CreateSessionRequest{Titre: "Anglais", DateDebut: "2024-10-01", DateFin: "2024-10-31", Capacite: 3})
	require.NoError(t, err)
	for _, email := range []string{"u@sgrh.gn", "v@sgrh.gn"} {
		_, ctx := f.employee(t, email)
		_, err := f.svc.Enroll(ctx, session.ID)
		require.NoError(t, err)
	}

	one := 1
	_, err = f.svc.Update(rhCtx, training.UpdateSessionRequest{ID: session.ID, Capacite: &one})
	assert.ErrorIs(t, err, training.ErrCapacityBelowCount)

	early := "2024-09-01"
	_, err = f.svc.Update(rhCtx, training.UpdateSessionRequest{ID: session.ID, DateFin: &early})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	assert.NoError(t, f.svc.Delete(rhCtx, session.ID))
	_, err = f.svc.Get(rhCtx, session.ID)
	assert.ErrorIs(t, err, training.ErrSessionNotFound)
}
