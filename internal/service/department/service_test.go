package department

import (
	"context"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/department"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/testutil"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentRepo struct {
	departments map[string]department.Department
	users       *testutil.UserStore
}

func newFakeDepartmentRepo(users *testutil.UserStore) *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[string]department.Department), users: users}
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	for _, existing := range f.departments {
		if existing.Code == d.Code {
			return department.Department{}, department.ErrDepartmentCodeExists
		}
	}
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	f.departments[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	d.EmployeeCount, _ = f.CountEmployees(ctx, id)
	return d, nil
}

func (f *fakeDepartmentRepo) List(ctx context.Context) ([]department.Department, error) {
	out := make([]department.Department, 0, len(f.departments))
	for _, d := range f.departments {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, d department.Department) (department.Department, error) {
	if _, ok := f.departments[d.ID]; !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	f.departments[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.departments[id]; !ok {
		return department.ErrDepartmentNotFound
	}
	delete(f.departments, id)
	return nil
}

func (f *fakeDepartmentRepo) CountEmployees(ctx context.Context, id string) (int64, error) {
	_, total, err := f.users.List(ctx, user.UserFilter{DepartementID: &id})
	return total, err
}

func TestDepartmentLifecycle(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewUserStore()
	repo := newFakeDepartmentRepo(users)
	svc := NewDepartmentService(testutil.Tx{}, repo, users)

	created, err := svc.Create(ctx, department.CreateDepartmentRequest{
		Nom: "Ressources Humaines", Code: " rh ", Description: "<script>x</script>Gestion du personnel",
	})
	require.NoError(t, err)
	assert.Equal(t, "RH", created.Code)
	assert.Equal(t, "Gestion du personnel", created.Description)

	_, err = svc.Create(ctx, department.CreateDepartmentRequest{Nom: "Doublon", Code: "RH"})
	assert.ErrorIs(t, err, department.ErrDepartmentCodeExists)

	_, err = svc.Create(ctx, department.CreateDepartmentRequest{Nom: "", Code: "!"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)

	deptID := created.ID
	users.Put(user.User{Nom: "Barry", Prenom: "Ousmane", Email: "o@sgrh.gn", Role: user.RoleEmployee, Actif: true, DepartementID: &deptID})

	employees, err := svc.ListEmployees(ctx, deptID)
	require.NoError(t, err)
	assert.Len(t, employees, 1)

	assert.ErrorIs(t, svc.Delete(ctx, deptID), department.ErrDepartmentHasEmployee)

	nom := "Direction RH"
	updated, err := svc.Update(ctx, department.UpdateDepartmentRequest{ID: deptID, Nom: &nom})
	require.NoError(t, err)
	assert.Equal(t, "Direction RH", updated.Nom)
	assert.Equal(t, "RH", updated.Code)
}

func TestDepartmentNotFound(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewUserStore()
	svc := NewDepartmentService(testutil.Tx{}, newFakeDepartmentRepo(users), users)

	_, err := svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	_, err = svc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.NewString()), department.ErrDepartmentNotFound)
}
