package leave

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/audit"
	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/timezone"
)

// SubmitLeaveRequest files a request against the caller's own profile.
type SubmitLeaveRequest struct {
	repo staff.Repository
	now  func() time.Time
}

func NewSubmitLeaveRequest(repo staff.Repository) *SubmitLeaveRequest {
	return &SubmitLeaveRequest{repo: repo, now: timezone.UTCNow}
}

func (uc *SubmitLeaveRequest) WithClock(now func() time.Time) *SubmitLeaveRequest {
	uc.now = now
	return uc
}

func (uc *SubmitLeaveRequest) Execute(
	ctx context.Context,
	p *policy.Principal,
	in staff.LeaveInput,
) (*models.LeaveRequest, error) {

	if p == nil {
		_, err := policy.Authorize(nil, policy.ActionSubmitLeaveRequest, policy.Target{})
		return nil, err
	}

	var created *models.LeaveRequest

	err := uc.repo.Transaction(ctx, func(tx staff.Repository) error {
		emp, err := tx.GetEmployeeByUserID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, staff.ErrNotFound) {
				return ErrNoProfile
			}
			return err
		}

		if _, err := policy.Authorize(p, policy.ActionSubmitLeaveRequest, policy.Target{
			OwnerUserID: p.UserID,
		}); err != nil {
			return err
		}

		period, err := staff.ParseLeave(in)
		if err != nil {
			return err
		}

		lr := &models.LeaveRequest{
			EmployeeID:  emp.ID,
			StartDate:   period.Start,
			EndDate:     period.End,
			Reason:      period.Reason,
			Status:      staff.InitialStatus(),
			RequestedAt: uc.now().Truncate(time.Microsecond),
		}
		if err := tx.CreateLeaveRequest(ctx, lr); err != nil {
			return err
		}

		if err := audit.Log(ctx, tx, audit.Event{
			UserID:   audit.ID(p.UserID),
			Action:   audit.ActionLeaveSubmitted,
			Entity:   audit.EntityLeaveRequest,
			EntityID: &lr.ID,
			Metadata: map[string]any{
				"employee_id": emp.ID,
				"start_date":  lr.StartDate.String(),
				"end_date":    lr.EndDate.String(),
			},
		}); err != nil {
			return err
		}

		created = lr
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
