package models

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	// LeaveStatusRejected is reserved; nothing transitions into it yet.
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"not null;index" json:"employee_id"`

	StartDate Date        `gorm:"not null" json:"start_date"`
	EndDate   Date        `gorm:"not null" json:"end_date"`
	Reason    string      `gorm:"type:text" json:"reason"`
	Status    LeaveStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	RequestedAt time.Time  `json:"requested_at"`
	DecidedAt   *time.Time `json:"decided_at"`
}

func (LeaveRequest) TableName() string { return "leave_request" }
