package postgresql_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/testutil"
	"github.com/Traore-oss/SGRH-sub001/internal/repository/postgresql"
	authsvc "github.com/Traore-oss/SGRH-sub001/internal/service/auth"
	usersvc "github.com/Traore-oss/SGRH-sub001/internal/service/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runConcurrently starts every fn at once and returns their errors in order.
func runConcurrently(fns ...func() error) []error {
	errs := make([]error, len(fns))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, fn := range fns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = fn()
		}()
	}
	close(start)
	wg.Wait()
	return errs
}

func TestUserService_ConcurrentAdminDeactivation(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)
	svc := usersvc.NewUserService(postgresql.NewTransactor(setup.DB), repo, nil)

	first := createTestUser(t, ctx, setup.DB, "admin1@sgrh.gn", user.RoleAdmin)
	second := createTestUser(t, ctx, setup.DB, "admin2@sgrh.gn", user.RoleAdmin)
	caller := testutil.ContextAs(t, uuid.NewString(), user.RoleAdmin)

	errs := runConcurrently(
		func() error { _, err := svc.ToggleActive(caller, first.ID); return err },
		func() error { _, err := svc.ToggleActive(caller, second.ID); return err },
	)

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			assert.ErrorIs(t, err, user.ErrLastActiveAdmin)
		}
	}
	assert.Equal(t, 1, failed)

	count, err := repo.CountActiveAdmins(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_ConcurrentBootstrapRegistration(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)
	svc := authsvc.NewAuthService(postgresql.NewTransactor(setup.DB), repo, testutil.JWT())

	register := func(i int) func() error {
		return func() error {
			_, err := svc.Register(ctx, auth.RegisterRequest{
				Nom:        "Bah",
				Prenom:     "Oumou",
				Email:      fmt.Sprintf("fondateur%d@sgrh.gn", i),
				MotDePasse: "secret123",
			})
			return err
		}
	}
	errs := runConcurrently(register(1), register(2), register(3))

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, auth.ErrRegistrationClosed)
	}
	assert.Equal(t, 1, succeeded)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_LockRegistrationOutsideTransaction(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)

	// released immediately when the implicit transaction of the statement ends
	require.NoError(t, repo.LockRegistration(context.Background()))
	require.NoError(t, repo.LockRegistration(context.Background()))
}
