//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/BruksfildServices01/staff-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/staff-manager/internal/db"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/infra/repository"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/testutil"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/account"
)

func setupPostgres(t *testing.T) *repository.StaffGormRepository {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("staff_db"),
		postgres.WithUsername("staff_user"),
		postgres.WithPassword("staff_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := dbpkg.NewDB(&config.Config{DBDriver: "postgres", DBUrl: dsn, GinMode: "test"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return repository.NewStaffGormRepository(db)
}

func TestPostgresDuplicateTranslation(t *testing.T) {
	ctx := context.Background()
	repo := setupPostgres(t)

	require.NoError(t, repo.CreateUser(ctx, &models.User{Username: "jane", PasswordHash: "x", Role: models.RoleUser}))
	err := repo.CreateUser(ctx, &models.User{Username: "jane", PasswordHash: "y", Role: models.RoleUser})
	assert.ErrorIs(t, err, staff.ErrDuplicate)
}

func TestPostgresConcurrentBootstrap(t *testing.T) {
	ctx := context.Background()
	repo := setupPostgres(t)
	uc := account.NewRegisterUser(repo, testutil.PlainHasher{})

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(ctx, nil, account.RegisterInput{
				Username: "first-" + string(rune('a'+i)),
				Password: "pw",
			})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		}
	}
	assert.Equal(t, 1, created)

	n, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPostgresConcurrentApprove(t *testing.T) {
	ctx := context.Background()
	repo := setupPostgres(t)

	u := &models.User{Username: "jane", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, repo.CreateUser(ctx, u))
	e := &models.Employee{UserID: &u.ID, Name: "Jane", JobRole: "Dev"}
	require.NoError(t, repo.CreateEmployee(ctx, e))
	lr := &models.LeaveRequest{
		EmployeeID:  e.ID,
		StartDate:   models.NewDate(2024, 6, 1),
		EndDate:     models.NewDate(2024, 6, 2),
		Status:      models.LeaveStatusPending,
		RequestedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateLeaveRequest(ctx, lr))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changed int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Transaction(ctx, func(tx staff.Repository) error {
				got, err := tx.GetLeaveRequestForUpdate(ctx, lr.ID)
				if err != nil {
					return err
				}
				ok, err := staff.Approve(got, time.Now().UTC())
				if err != nil || !ok {
					return err
				}
				mu.Lock()
				changed++
				mu.Unlock()
				return tx.UpdateLeaveRequest(ctx, got)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, changed)
}
