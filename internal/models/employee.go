package models

import "time"

type Employee struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name      string  `gorm:"size:120;not null" json:"name"`
	JobRole   string  `gorm:"column:role;size:120;not null" json:"role"`
	Salary    float64 `gorm:"not null" json:"salary"`
	StartDate *Date   `json:"start_date"`
	LeaveDays int     `gorm:"not null;default:0" json:"leave_days"`

	LeaveRequests []LeaveRequest `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (Employee) TableName() string { return "employee" }
