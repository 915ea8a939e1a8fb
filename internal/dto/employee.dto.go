package dto

import (
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type EmployeeDTO struct {
	ID             uint         `json:"id"`
	UserID         *uint        `json:"user_id"`
	Name           string       `json:"name"`
	Role           string       `json:"role"`
	Salary         float64      `json:"salary"`
	SalaryCurrency string       `json:"salary_currency"`
	StartDate      *models.Date `json:"start_date"`
	LeaveDays      int          `json:"leave_days"`
	CreatedAt      time.Time    `json:"created_at"`
}

func Employee(e *models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             e.ID,
		UserID:         e.UserID,
		Name:           e.Name,
		Role:           e.JobRole,
		Salary:         e.Salary,
		SalaryCurrency: staff.SalaryCurrency,
		StartDate:      e.StartDate,
		LeaveDays:      e.LeaveDays,
		CreatedAt:      e.CreatedAt,
	}
}

func Employees(list []models.Employee) []EmployeeDTO {
	out := make([]EmployeeDTO, 0, len(list))
	for i := range list {
		out = append(out, Employee(&list[i]))
	}
	return out
}
