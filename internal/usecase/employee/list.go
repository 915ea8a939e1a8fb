package employee

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type ListEmployees struct {
	repo staff.Repository
}

func NewListEmployees(repo staff.Repository) *ListEmployees {
	return &ListEmployees{repo: repo}
}

// Execute returns every employee ordered by id for admins, and at most the
// caller's own profile for everyone else.
func (uc *ListEmployees) Execute(ctx context.Context, p *policy.Principal) ([]models.Employee, error) {
	scope, err := policy.Authorize(p, policy.ActionListEmployees, policy.Target{})
	if err != nil {
		return nil, err
	}

	if scope == policy.ScopeAll {
		return uc.repo.ListEmployees(ctx)
	}

	e, err := uc.repo.GetEmployeeByUserID(ctx, p.UserID)
	if errors.Is(err, staff.ErrNotFound) {
		return []models.Employee{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []models.Employee{*e}, nil
}
