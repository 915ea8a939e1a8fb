package employee

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/staff-manager/internal/audit"
	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
)

type DeleteEmployee struct {
	repo staff.Repository
}

func NewDeleteEmployee(repo staff.Repository) *DeleteEmployee {
	return &DeleteEmployee{repo: repo}
}

// Execute removes the employee and all of its leave requests atomically.
func (uc *DeleteEmployee) Execute(ctx context.Context, p *policy.Principal, id uint) error {
	if _, err := policy.Authorize(p, policy.ActionDeleteEmployee, policy.Target{}); err != nil {
		return err
	}
	if id == 0 {
		return ErrEmployeeNotFound
	}

	return uc.repo.Transaction(ctx, func(tx staff.Repository) error {
		if err := tx.DeleteEmployee(ctx, id); err != nil {
			if errors.Is(err, staff.ErrNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		return audit.Log(ctx, tx, audit.Event{
			UserID:   audit.ID(p.UserID),
			Action:   audit.ActionEmployeeDeleted,
			Entity:   audit.EntityEmployee,
			EntityID: &id,
		})
	})
}
