package employee

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type GetEmployee struct {
	repo staff.Repository
}

func NewGetEmployee(repo staff.Repository) *GetEmployee {
	return &GetEmployee{repo: repo}
}

func (uc *GetEmployee) Execute(
	ctx context.Context,
	p *policy.Principal,
	id uint,
) (*models.Employee, error) {

	if p == nil {
		_, err := policy.Authorize(nil, policy.ActionReadEmployee, policy.Target{})
		return nil, err
	}

	e, err := uc.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			if !p.IsAdmin() {
				// missing and foreign profiles look the same to a non-admin
				_, err := policy.Authorize(p, policy.ActionReadEmployee, policy.Target{})
				return nil, err
			}
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if _, err := policy.Authorize(p, policy.ActionReadEmployee, policy.Target{
		OwnerUserID: ownerOf(e.UserID),
	}); err != nil {
		return nil, err
	}
	return e, nil
}

type GetMyProfile struct {
	repo staff.Repository
}

func NewGetMyProfile(repo staff.Repository) *GetMyProfile {
	return &GetMyProfile{repo: repo}
}

// Execute returns the caller's own profile, or nil when the account has none.
func (uc *GetMyProfile) Execute(ctx context.Context, p *policy.Principal) (*models.Employee, error) {
	target := policy.Target{}
	if p != nil {
		target.OwnerUserID = p.UserID
	}
	if _, err := policy.Authorize(p, policy.ActionReadEmployee, target); err != nil {
		return nil, err
	}

	e, err := uc.repo.GetEmployeeByUserID(ctx, p.UserID)
	if errors.Is(err, staff.ErrNotFound) {
		return nil, nil
	}
	return e, err
}
