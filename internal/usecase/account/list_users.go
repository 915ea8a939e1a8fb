package account

import (
	"context"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type ListUsers struct {
	repo staff.Repository
}

func NewListUsers(repo staff.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

// Execute lists accounts ordered by username. With withoutProfile set, only
// accounts not yet bound to an employee profile are returned.
func (uc *ListUsers) Execute(
	ctx context.Context,
	p *policy.Principal,
	withoutProfile bool,
) ([]models.User, error) {

	if _, err := policy.Authorize(p, policy.ActionListUsers, policy.Target{}); err != nil {
		return nil, err
	}

	if withoutProfile {
		return uc.repo.ListUsersWithoutEmployee(ctx)
	}
	return uc.repo.ListUsers(ctx)
}

// CountAdmins is shown on the admin dashboard.
func (uc *ListUsers) CountAdmins(ctx context.Context, p *policy.Principal) (int64, error) {
	if _, err := policy.Authorize(p, policy.ActionListUsers, policy.Target{}); err != nil {
		return 0, err
	}
	return uc.repo.CountAdmins(ctx)
}
