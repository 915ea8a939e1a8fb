package dto

import (
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type LeaveRequestDTO struct {
	ID          uint               `json:"id"`
	EmployeeID  uint               `json:"employee_id"`
	StartDate   models.Date        `json:"start_date"`
	EndDate     models.Date        `json:"end_date"`
	Reason      string             `json:"reason"`
	Status      models.LeaveStatus `json:"status"`
	RequestedAt time.Time          `json:"requested_at"`
	DecidedAt   *time.Time         `json:"decided_at"`
}

func LeaveRequest(lr *models.LeaveRequest) LeaveRequestDTO {
	return LeaveRequestDTO{
		ID:          lr.ID,
		EmployeeID:  lr.EmployeeID,
		StartDate:   lr.StartDate,
		EndDate:     lr.EndDate,
		Reason:      lr.Reason,
		Status:      lr.Status,
		RequestedAt: lr.RequestedAt,
		DecidedAt:   lr.DecidedAt,
	}
}

func LeaveRequests(list []models.LeaveRequest) []LeaveRequestDTO {
	out := make([]LeaveRequestDTO, 0, len(list))
	for i := range list {
		out = append(out, LeaveRequest(&list[i]))
	}
	return out
}
