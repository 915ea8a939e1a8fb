package audit

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/staff-manager/internal/models"
)

const (
	ActionUserCreated     = "user_created"
	ActionEmployeeCreated = "employee_created"
	ActionEmployeeUpdated = "employee_updated"
	ActionEmployeeDeleted = "employee_deleted"
	ActionLeaveSubmitted  = "leave_submitted"
	ActionLeaveApproved   = "leave_approved"
	ActionEmployeesExport = "employees_exported"

	EntityUser         = "user"
	EntityEmployee     = "employee"
	EntityLeaveRequest = "leave_request"
)

// Writer is the slice of the store an audit entry needs. The staff
// repository and its transaction handles satisfy it.
type Writer interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Log records ev through w. Called with a transaction handle, the entry
// commits or rolls back together with the change it describes.
func Log(ctx context.Context, w Writer, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return w.CreateAuditLog(ctx, &models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	})
}

func ID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
