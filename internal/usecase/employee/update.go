package employee

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/staff-manager/internal/audit"
	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type UpdateInput struct {
	Fields staff.EmployeeInput
	// Form selects full-form semantics: name, job role and salary required,
	// blank start date or leave balance left unchanged.
	Form bool
}

type UpdateEmployee struct {
	repo staff.Repository
}

func NewUpdateEmployee(repo staff.Repository) *UpdateEmployee {
	return &UpdateEmployee{repo: repo}
}

// Execute applies a partial update. Only fields present in the input change;
// the first invalid field aborts the whole update. An unknown id is reported
// before any field problem.
func (uc *UpdateEmployee) Execute(
	ctx context.Context,
	p *policy.Principal,
	id uint,
	in UpdateInput,
) (*models.Employee, error) {

	if _, err := policy.Authorize(p, policy.ActionUpdateEmployee, policy.Target{}); err != nil {
		return nil, err
	}

	if id == 0 {
		return nil, ErrEmployeeNotFound
	}

	parse := staff.ParseEmployeeChanges
	if in.Form {
		parse = staff.ParseEmployeeForm
	}

	var updated *models.Employee

	err := uc.repo.Transaction(ctx, func(tx staff.Repository) error {
		e, err := tx.GetEmployeeByID(ctx, id)
		if err != nil {
			if errors.Is(err, staff.ErrNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		ch, err := parse(in.Fields)
		if err != nil {
			return err
		}

		ch.Apply(e)
		if err := tx.UpdateEmployee(ctx, e); err != nil {
			return err
		}

		if err := audit.Log(ctx, tx, audit.Event{
			UserID:   audit.ID(p.UserID),
			Action:   audit.ActionEmployeeUpdated,
			Entity:   audit.EntityEmployee,
			EntityID: &e.ID,
			Metadata: map[string]any{"fields": changedFields(ch)},
		}); err != nil {
			return err
		}

		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func changedFields(ch staff.EmployeeChanges) []string {
	fields := []string{}
	if ch.Name != nil {
		fields = append(fields, "name")
	}
	if ch.JobRole != nil {
		fields = append(fields, "role")
	}
	if ch.Salary != nil {
		fields = append(fields, "salary")
	}
	if ch.StartDate != nil || ch.ClearStartDate {
		fields = append(fields, "start_date")
	}
	if ch.LeaveDays != nil {
		fields = append(fields, "leave_days")
	}
	return fields
}
