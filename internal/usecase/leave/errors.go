package leave

import "github.com/BruksfildServices01/staff-manager/internal/httperr"

var (
	ErrNoProfile            = httperr.Validation("", "profile_missing", "Your employee profile is not set up yet. Please contact an administrator.")
	ErrLeaveRequestNotFound = httperr.NotFound("leave_request_not_found", "Leave request not found.")
)

// AlreadyApprovedMessage is the informational outcome of re-approving.
const AlreadyApprovedMessage = "This leave request has already been approved."
