package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/testutil"
)

func createUser(t *testing.T, repo staff.Repository, username string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func createEmployee(t *testing.T, repo staff.Repository, u *models.User, name string) *models.Employee {
	t.Helper()
	e := &models.Employee{UserID: &u.ID, Name: name, JobRole: "Staff", Salary: 100}
	require.NoError(t, repo.CreateEmployee(context.Background(), e))
	return e
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewRepo(t)

	n, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	createUser(t, repo, "zed", models.RoleAdmin)
	createUser(t, repo, "amy", models.RoleUser)

	err = repo.CreateUser(ctx, &models.User{Username: "amy", PasswordHash: "y", Role: models.RoleUser})
	assert.ErrorIs(t, err, staff.ErrDuplicate)

	// usernames are case-sensitive
	createUser(t, repo, "Amy", models.RoleUser)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Amy", users[0].Username)
	assert.Equal(t, "amy", users[1].Username)
	assert.Equal(t, "zed", users[2].Username)

	admins, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, staff.ErrNotFound)

	_, err = repo.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, staff.ErrNotFound)

	assert.NoError(t, repo.LockUsers(ctx))
}

func TestEmployeeProfileUniquePerUser(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewRepo(t)

	u := createUser(t, repo, "jane", models.RoleUser)
	createEmployee(t, repo, u, "Jane")

	err := repo.CreateEmployee(ctx, &models.Employee{UserID: &u.ID, Name: "Again", JobRole: "x"})
	assert.ErrorIs(t, err, staff.ErrDuplicate)

	free := createUser(t, repo, "bob", models.RoleUser)
	without, err := repo.ListUsersWithoutEmployee(ctx)
	require.NoError(t, err)
	require.Len(t, without, 1)
	assert.Equal(t, free.ID, without[0].ID)
}

func TestDeleteEmployeeCascades(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewRepo(t)

	u := createUser(t, repo, "jane", models.RoleUser)
	e := createEmployee(t, repo, u, "Jane")

	other := createEmployee(t, repo, createUser(t, repo, "bob", models.RoleUser), "Bob")

	var ids []uint
	for i := 0; i < 3; i++ {
		lr := &models.LeaveRequest{
			EmployeeID:  e.ID,
			StartDate:   models.NewDate(2024, 3, 1+i),
			EndDate:     models.NewDate(2024, 3, 2+i),
			Status:      models.LeaveStatusPending,
			RequestedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.CreateLeaveRequest(ctx, lr))
		ids = append(ids, lr.ID)
	}
	kept := &models.LeaveRequest{
		EmployeeID: other.ID, StartDate: models.NewDate(2024, 1, 1), EndDate: models.NewDate(2024, 1, 1),
		Status: models.LeaveStatusPending, RequestedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateLeaveRequest(ctx, kept))

	require.NoError(t, repo.Transaction(ctx, func(tx staff.Repository) error {
		return tx.DeleteEmployee(ctx, e.ID)
	}))

	for _, id := range ids {
		_, err := repo.GetLeaveRequestForUpdate(ctx, id)
		assert.ErrorIs(t, err, staff.ErrNotFound)
	}
	_, err := repo.GetLeaveRequestForUpdate(ctx, kept.ID)
	assert.NoError(t, err)

	_, err = repo.GetEmployeeByID(ctx, e.ID)
	assert.ErrorIs(t, err, staff.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteEmployee(ctx, e.ID), staff.ErrNotFound)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewRepo(t)

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx staff.Repository) error {
		if err := tx.CreateUser(ctx, &models.User{Username: "ghost", PasswordHash: "x", Role: models.RoleUser}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLeaveRequestOrdering(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewRepo(t)

	e := createEmployee(t, repo, createUser(t, repo, "jane", models.RoleUser), "Jane")
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mk := func(offset time.Duration, status models.LeaveStatus) uint {
		lr := &models.LeaveRequest{
			EmployeeID:  e.ID,
			StartDate:   models.NewDate(2024, 2, 1),
			EndDate:     models.NewDate(2024, 2, 2),
			Status:      status,
			RequestedAt: base.Add(offset),
		}
		require.NoError(t, repo.CreateLeaveRequest(ctx, lr))
		return lr.ID
	}

	oldPending := mk(0, models.LeaveStatusPending)
	approved := mk(time.Hour, models.LeaveStatusApproved)
	newPending := mk(2*time.Hour, models.LeaveStatusPending)

	all, err := repo.ListLeaveRequests(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// status ascending, then newest first
	assert.Equal(t, []uint{approved, newPending, oldPending}, []uint{all[0].ID, all[1].ID, all[2].ID})

	own, err := repo.ListLeaveRequestsForEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, own, 3)
	assert.Equal(t, []uint{newPending, approved, oldPending}, []uint{own[0].ID, own[1].ID, own[2].ID})
}

func TestListAuditLogs(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewRepo(t)

	for i := 0; i < 5; i++ {
		action := "employee_created"
		if i%2 == 1 {
			action = "employee_deleted"
		}
		require.NoError(t, repo.CreateAuditLog(ctx, &models.AuditLog{Action: action, Entity: "employee"}))
	}

	logs, total, err := repo.ListAuditLogs(ctx, staff.AuditFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, logs, 2)

	logs, total, err = repo.ListAuditLogs(ctx, staff.AuditFilter{Action: "employee_deleted", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)

	future := time.Now().UTC().Add(time.Hour)
	_, total, err = repo.ListAuditLogs(ctx, staff.AuditFilter{From: &future, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}
