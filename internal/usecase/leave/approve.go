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

type ApproveResult struct {
	LeaveRequest *models.LeaveRequest
	// Changed is false when the request was already approved.
	Changed bool
	Message string
}

type ApproveLeaveRequest struct {
	repo staff.Repository
	now  func() time.Time
}

func NewApproveLeaveRequest(repo staff.Repository) *ApproveLeaveRequest {
	return &ApproveLeaveRequest{repo: repo, now: timezone.UTCNow}
}

func (uc *ApproveLeaveRequest) WithClock(now func() time.Time) *ApproveLeaveRequest {
	uc.now = now
	return uc
}

func (uc *ApproveLeaveRequest) Execute(
	ctx context.Context,
	p *policy.Principal,
	id uint,
) (*ApproveResult, error) {

	if _, err := policy.Authorize(p, policy.ActionApproveLeave, policy.Target{}); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, ErrLeaveRequestNotFound
	}

	var res *ApproveResult

	err := uc.repo.Transaction(ctx, func(tx staff.Repository) error {
		lr, err := tx.GetLeaveRequestForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, staff.ErrNotFound) {
				return ErrLeaveRequestNotFound
			}
			return err
		}

		changed, err := staff.Approve(lr, uc.now().Truncate(time.Microsecond))
		if err != nil {
			return err
		}

		if !changed {
			res = &ApproveResult{LeaveRequest: lr, Message: AlreadyApprovedMessage}
			return nil
		}

		if err := tx.UpdateLeaveRequest(ctx, lr); err != nil {
			return err
		}

		if err := audit.Log(ctx, tx, audit.Event{
			UserID:   audit.ID(p.UserID),
			Action:   audit.ActionLeaveApproved,
			Entity:   audit.EntityLeaveRequest,
			EntityID: &lr.ID,
		}); err != nil {
			return err
		}

		res = &ApproveResult{LeaveRequest: lr, Changed: true, Message: "Leave request approved."}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
