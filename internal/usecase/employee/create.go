package employee

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/staff-manager/internal/audit"
	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type CreateEmployee struct {
	repo staff.Repository
}

func NewCreateEmployee(repo staff.Repository) *CreateEmployee {
	return &CreateEmployee{repo: repo}
}

func (uc *CreateEmployee) Execute(
	ctx context.Context,
	p *policy.Principal,
	in staff.EmployeeInput,
) (*models.Employee, error) {

	// --------------------------------------------------
	// Authorization + referenced user id
	// --------------------------------------------------
	if _, err := policy.Authorize(p, policy.ActionCreateEmployee, policy.Target{}); err != nil {
		return nil, err
	}

	userID, err := staff.ParseUserID(in.UserID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Existence checks, then fields, then persist
	// --------------------------------------------------
	var created *models.Employee

	err = uc.repo.Transaction(ctx, func(tx staff.Repository) error {
		if _, err := tx.GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, staff.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if _, err := tx.GetEmployeeByUserID(ctx, userID); err == nil {
			return ErrProfileExists
		} else if !errors.Is(err, staff.ErrNotFound) {
			return err
		}

		ch, err := staff.ParseNewEmployee(in)
		if err != nil {
			return err
		}

		e := &models.Employee{UserID: &userID}
		ch.Apply(e)

		if err := tx.CreateEmployee(ctx, e); err != nil {
			if errors.Is(err, staff.ErrDuplicate) {
				return ErrProfileExists
			}
			return err
		}

		if err := audit.Log(ctx, tx, audit.Event{
			UserID:   audit.ID(p.UserID),
			Action:   audit.ActionEmployeeCreated,
			Entity:   audit.EntityEmployee,
			EntityID: &e.ID,
			Metadata: map[string]any{"user_id": userID, "name": e.Name},
		}); err != nil {
			return err
		}

		created = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
