package staff

import (
	"strings"

	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type Credentials struct {
	Username string
	Password string
}

// Normalize trims both values and requires them to be non-empty. Usernames
// stay case-sensitive.
func (c Credentials) Normalize() (Credentials, error) {
	out := Credentials{
		Username: strings.TrimSpace(c.Username),
		Password: strings.TrimSpace(c.Password),
	}
	if out.Username == "" || out.Password == "" {
		return Credentials{}, httperr.Validation("", "missing_credentials", "Username and password are required.")
	}
	return out, nil
}

// ResolveRole picks the role for a new account. An unset role makes the
// first account of an empty system an admin and every later one a user.
func ResolveRole(raw string, firstAccount bool) (models.Role, error) {
	switch models.Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		if firstAccount {
			return models.RoleAdmin, nil
		}
		return models.RoleUser, nil
	case models.RoleAdmin:
		return models.RoleAdmin, nil
	case models.RoleUser:
		return models.RoleUser, nil
	}
	return "", httperr.Validation("role", "invalid_role", "role must be either 'admin' or 'user'.")
}
