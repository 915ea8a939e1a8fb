package leave

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type ListLeaveRequests struct {
	repo staff.Repository
}

func NewListLeaveRequests(repo staff.Repository) *ListLeaveRequests {
	return &ListLeaveRequests{repo: repo}
}

// Execute lists all requests for admins (pending first, newest first within a
// status) and the caller's own requests, newest first, for everyone else.
// A caller without a profile gets an empty list.
func (uc *ListLeaveRequests) Execute(
	ctx context.Context,
	p *policy.Principal,
) ([]models.LeaveRequest, error) {

	scope, err := policy.Authorize(p, policy.ActionListLeaveRequests, policy.Target{})
	if err != nil {
		return nil, err
	}

	if scope == policy.ScopeAll {
		return uc.repo.ListLeaveRequests(ctx)
	}
	return uc.listOwn(ctx, p)
}

// ExecuteOwn lists only the caller's own requests, whatever the role.
func (uc *ListLeaveRequests) ExecuteOwn(
	ctx context.Context,
	p *policy.Principal,
) ([]models.LeaveRequest, error) {

	if _, err := policy.Authorize(p, policy.ActionListLeaveRequests, policy.Target{}); err != nil {
		return nil, err
	}
	return uc.listOwn(ctx, p)
}

func (uc *ListLeaveRequests) listOwn(
	ctx context.Context,
	p *policy.Principal,
) ([]models.LeaveRequest, error) {

	emp, err := uc.repo.GetEmployeeByUserID(ctx, p.UserID)
	if errors.Is(err, staff.ErrNotFound) {
		return []models.LeaveRequest{}, nil
	}
	if err != nil {
		return nil, err
	}
	return uc.repo.ListLeaveRequestsForEmployee(ctx, emp.ID)
}
