package dto

import (
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type UserSummaryDTO struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

type UserDTO struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func User(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}

func Users(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, User(&list[i]))
	}
	return out
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        UserSummaryDTO `json:"user"`
}

type AuditLogDTO struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  *uint     `json:"entity_id"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

func AuditLogs(list []models.AuditLog) []AuditLogDTO {
	out := make([]AuditLogDTO, 0, len(list))
	for _, l := range list {
		out = append(out, AuditLogDTO{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Metadata:  l.Metadata,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
