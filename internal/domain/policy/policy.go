// Package policy decides whether a principal may perform an action. Every use
// case consults Evaluate before touching the store.
package policy

import (
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

// Principal is the authenticated identity behind a call. A nil *Principal is
// an anonymous caller.
type Principal struct {
	UserID   uint
	Username string
	Role     models.Role
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// System is the principal used by operator tooling.
func System() *Principal {
	return &Principal{Username: "system", Role: models.RoleAdmin}
}

type Action string

const (
	ActionLogin              Action = "login"
	ActionRegister           Action = "register"
	ActionListEmployees      Action = "list_employees"
	ActionReadEmployee       Action = "read_employee"
	ActionCreateEmployee     Action = "create_employee"
	ActionUpdateEmployee     Action = "update_employee"
	ActionDeleteEmployee     Action = "delete_employee"
	ActionExportEmployees    Action = "export_employees"
	ActionListUsers          Action = "list_users"
	ActionListLeaveRequests  Action = "list_leave_requests"
	ActionSubmitLeaveRequest Action = "submit_leave_request"
	ActionApproveLeave       Action = "approve_leave_request"
	ActionViewAuditLog       Action = "view_audit_log"
)

// Target carries the facts about the object of an action that the rules need.
type Target struct {
	// SystemEmpty is true while no account exists yet.
	SystemEmpty bool
	// OwnerUserID is the user owning the targeted employee profile, if any.
	OwnerUserID uint
}

// Scope tells the caller how much of a collection an allowed principal sees.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAll
)

type Decision struct {
	Allowed bool
	Scope   Scope
	// Anonymous marks a denial caused by missing authentication.
	Anonymous bool
	Reason    string
}

func allow(scope Scope) Decision {
	return Decision{Allowed: true, Scope: scope}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

var adminActions = map[Action]bool{
	ActionCreateEmployee:  true,
	ActionUpdateEmployee:  true,
	ActionDeleteEmployee:  true,
	ActionExportEmployees: true,
	ActionListUsers:       true,
	ActionApproveLeave:    true,
	ActionViewAuditLog:    true,
}

// Evaluate is a pure function of its inputs.
func Evaluate(p *Principal, action Action, target Target) Decision {
	if action == ActionLogin {
		return allow(ScopeOwn)
	}

	if p == nil {
		if action == ActionRegister && target.SystemEmpty {
			return allow(ScopeAll)
		}
		d := deny("Authentication required.")
		if action == ActionRegister {
			d.Reason = "Please contact an administrator to create a new account."
		}
		d.Anonymous = true
		return d
	}

	if p.IsAdmin() {
		switch {
		case adminActions[action], action == ActionRegister,
			action == ActionListEmployees, action == ActionReadEmployee,
			action == ActionListLeaveRequests:
			return allow(ScopeAll)
		case action == ActionSubmitLeaveRequest:
			if target.OwnerUserID == p.UserID {
				return allow(ScopeOwn)
			}
			return deny("Leave requests can only be submitted for your own profile.")
		}
		return deny("Unknown action.")
	}

	switch action {
	case ActionListEmployees, ActionListLeaveRequests:
		return allow(ScopeOwn)
	case ActionReadEmployee, ActionSubmitLeaveRequest:
		if target.OwnerUserID == p.UserID {
			return allow(ScopeOwn)
		}
		return deny("You can only access your own employee profile.")
	case ActionRegister:
		return deny("Only administrators can create new users.")
	}

	return deny("Administrator privileges required.")
}

// Authorize evaluates the rules and turns a denial into the matching
// authentication or authorization error.
func Authorize(p *Principal, action Action, target Target) (Scope, error) {
	d := Evaluate(p, action, target)
	if d.Allowed {
		return d.Scope, nil
	}
	if d.Anonymous {
		return ScopeNone, httperr.Authentication("authentication_required", d.Reason)
	}
	return ScopeNone, httperr.Authorization("forbidden", d.Reason)
}
