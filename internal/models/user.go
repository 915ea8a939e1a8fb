package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:50;not null;default:'user'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "user" }

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
