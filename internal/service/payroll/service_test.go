package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/payroll"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/testutil"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepo struct {
	payments map[string]payroll.Payment
	users    *testutil.UserStore
}

func (f *fakePaymentRepo) join(p payroll.Payment) payroll.Payment {
	if u, ok := f.users.Get(p.EmployeID); ok {
		p.EmployeNom, p.EmployePrenom, p.Matricule = &u.Nom, &u.Prenom, &u.Matricule
	}
	return p
}

func (f *fakePaymentRepo) Create(ctx context.Context, p payroll.Payment) (payroll.Payment, error) {
	for _, existing := range f.payments {
		if existing.EmployeID == p.EmployeID && existing.Mois == p.Mois {
			return payroll.Payment{}, payroll.ErrPaymentAlreadyExists
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.payments[p.ID] = p
	return f.join(p), nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (payroll.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}
	return f.join(p), nil
}

func (f *fakePaymentRepo) List(ctx context.Context, filter payroll.PaymentFilter) ([]payroll.Payment, int64, error) {
	out := make([]payroll.Payment, 0)
	for _, p := range f.payments {
		if filter.EmployeID != nil && p.EmployeID != *filter.EmployeID {
			continue
		}
		out = append(out, f.join(p))
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, p payroll.Payment) (payroll.Payment, error) {
	if _, ok := f.payments[p.ID]; !ok {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}
	f.payments[p.ID] = p
	return f.join(p), nil
}

func (f *fakePaymentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.payments[id]; !ok {
		return payroll.ErrPaymentNotFound
	}
	delete(f.payments, id)
	return nil
}

type fixture struct {
	svc        payroll.PayrollService
	payments   *fakePaymentRepo
	attendance *testutil.AttendanceStore
	emp        user.User
	rh         user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := testutil.NewUserStore()
	emp := users.Put(user.User{Nom: "Diallo", Prenom: "Mamadou", Email: "m@sgrh.gn", Role: user.RoleEmployee, SalaireBase: 300000, Actif: true})
	rh := users.Put(user.User{Nom: "Bah", Prenom: "Aissatou", Email: "a@sgrh.gn", Role: user.RoleRH, Actif: true})
	store := testutil.NewAttendanceStore(users)
	payments := &fakePaymentRepo{payments: make(map[string]payroll.Payment), users: users}

	svc := NewPayrollService(testutil.Tx{}, payments, store, users, metrics.NewCollector(prometheus.NewRegistry()), "SGRH")
	return &fixture{svc: svc, payments: payments, attendance: store, emp: emp, rh: rh}
}

func (f *fixture) absent(t *testing.T, day time.Time) {
	t.Helper()
	_, err := f.attendance.Upsert(context.Background(), attendance.NewRecord(f.emp.ID, day))
	require.NoError(t, err)
}

func TestCreatePayment_DefaultsFromEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	res, err := f.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{EmployeID: f.emp.ID, Mois: "2024-01"})
	require.NoError(t, err)
	assert.Equal(t, 300000.0, res.SalaireBase)
	assert.Equal(t, 300000.0, res.SalaireNet)
	assert.Equal(t, "En attente", res.Statut)

	_, err = f.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{EmployeID: f.emp.ID, Mois: "2024-01"})
	assert.ErrorIs(t, err, payroll.ErrPaymentAlreadyExists)
}

func TestCreatePayment_CountsMonthAbsences(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	for _, d := range []int{3, 10, 31} {
		f.absent(t, time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC))
	}
	// outside the month
	f.absent(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	res, err := f.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{EmployeID: f.emp.ID, Mois: "2024-01"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.JoursAbsence)
	assert.Equal(t, 270000.0, res.SalaireNet)
}

func TestCreatePayment_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	negative := -1.0
	_, err := f.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{EmployeID: f.emp.ID, Mois: "2024-13", Primes: -5, SalaireBase: &negative})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)

	_, err = f.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{EmployeID: uuid.NewString(), Mois: "2024-01"})
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestSimulate_DoesNotStore(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	base := 450000.0
	absences := 2.0
	res, err := f.svc.Simulate(ctx, payroll.CreatePaymentRequest{
		EmployeID: f.emp.ID, Mois: "2024-05", SalaireBase: &base, Primes: 20000,
		HeuresSupplementaires: 4.5, Deductions: 10000, JoursAbsence: &absences,
	})
	require.NoError(t, err)
	assert.Equal(t, 9000.0, res.Detail.MontantHeuresSup)
	assert.Equal(t, 30000.0, res.Detail.RetenueAbsences)
	assert.Equal(t, 439000.0, res.Detail.SalaireNet)
	assert.Empty(t, f.payments.payments)
}

func TestMarkPaid_LocksPayment(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	created, err := f.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{EmployeID: f.emp.ID, Mois: "2024-02"})
	require.NoError(t, err)

	primes := 50000.0
	updated, err := f.svc.UpdatePayment(ctx, payroll.UpdatePaymentRequest{ID: created.ID, Primes: &primes})
	require.NoError(t, err)
	assert.Equal(t, 350000.0, updated.SalaireNet)

	paid, err := f.svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Payé", paid.Statut)
	assert.NotNil(t, paid.DatePaiement)

	_, err = f.svc.MarkPaid(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrPaymentAlreadyPaid)

	_, err = f.svc.UpdatePayment(ctx, payroll.UpdatePaymentRequest{ID: created.ID, Primes: &primes})
	assert.ErrorIs(t, err, payroll.ErrPaymentAlreadyPaid)

	assert.ErrorIs(t, f.svc.DeletePayment(ctx, created.ID), payroll.ErrPaymentAlreadyPaid)
}

func TestPayslip_Ownership(t *testing.T) {
	f := newFixture(t)
	rhCtx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)
	empCtx := testutil.ContextAs(t, f.emp.ID, user.RoleEmployee)
	strangerCtx := testutil.ContextAs(t, uuid.NewString(), user.RoleEmployee)

	created, err := f.svc.CreatePayment(rhCtx, payroll.CreatePaymentRequest{EmployeID: f.emp.ID, Mois: "2024-03"})
	require.NoError(t, err)

	name, pdf, err := f.svc.Payslip(empCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bulletin-"+f.emp.Matricule+"-2024-03.pdf", name)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, _, err = f.svc.Payslip(strangerCtx, created.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.svc.GetPayment(strangerCtx, created.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	mine, err := f.svc.MyPayments(empCtx, payroll.PaymentFilter{})
	require.NoError(t, err)
	assert.Len(t, mine.Payments, 1)

	theirs, err := f.svc.MyPayments(strangerCtx, payroll.PaymentFilter{})
	require.NoError(t, err)
	assert.Empty(t, theirs.Payments)
}

func TestExportPayments(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ContextAs(t, f.rh.ID, user.RoleRH)

	_, err := f.svc.CreatePayment(ctx, payroll.CreatePaymentRequest{EmployeID: f.emp.ID, Mois: "2024-04"})
	require.NoError(t, err)

	data, err := f.svc.ExportPayments(ctx, payroll.PaymentFilter{})
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}
