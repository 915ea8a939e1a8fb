package staff

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/validators"
)

type LeaveInput struct {
	StartDate string
	EndDate   string
	Reason    string
}

type LeavePeriod struct {
	Start  models.Date
	End    models.Date
	Reason string
}

func ParseLeave(in LeaveInput) (LeavePeriod, error) {
	if strings.TrimSpace(in.StartDate) == "" || strings.TrimSpace(in.EndDate) == "" {
		return LeavePeriod{}, httperr.Validation("", "missing_dates", "Start and end dates are required.")
	}

	start, err := validators.ISODate(in.StartDate)
	if err != nil {
		return LeavePeriod{}, httperr.Validation("start_date", "invalid_start_date", "start_date must be in YYYY-MM-DD format.")
	}

	end, err := validators.ISODate(in.EndDate)
	if err != nil {
		return LeavePeriod{}, httperr.Validation("end_date", "invalid_end_date", "end_date must be in YYYY-MM-DD format.")
	}

	if end.Before(start) {
		return LeavePeriod{}, httperr.Validation("end_date", "end_before_start", "End date cannot be before start date.")
	}

	return LeavePeriod{Start: start, End: end, Reason: strings.TrimSpace(in.Reason)}, nil
}

// ===============================
// Leave status
// ===============================

func InitialStatus() models.LeaveStatus {
	return models.LeaveStatusPending
}

// Approve moves a pending request to approved. It reports false, with no
// error, when the request is already approved.
func Approve(lr *models.LeaveRequest, now time.Time) (bool, error) {
	switch lr.Status {
	case models.LeaveStatusApproved:
		return false, nil
	case models.LeaveStatusPending:
		lr.Status = models.LeaveStatusApproved
		lr.DecidedAt = &now
		return true, nil
	}
	return false, httperr.Validation("status", "invalid_state", "Only pending leave requests can be approved.")
}
