package employee

import "github.com/BruksfildServices01/staff-manager/internal/httperr"

var (
	ErrEmployeeNotFound = httperr.NotFound("employee_not_found", "Employee not found.")
	ErrUserNotFound     = httperr.NotFound("user_not_found", "Referenced user does not exist.")
	ErrProfileExists    = httperr.Conflict("user_id", "profile_exists", "User already has an employee profile.")
	ErrArchiveDisabled  = httperr.Validation("", "archive_disabled", "Export archive is not configured.")
)

func ownerOf(userID *uint) uint {
	if userID == nil {
		return 0
	}
	return *userID
}
