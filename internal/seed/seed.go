// Package seed installs the default accounts and employee profiles of a
// fresh installation.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type Hasher interface {
	Hash(password string) (string, error)
}

type Profile struct {
	Name      string
	JobRole   string
	Salary    float64
	StartDate models.Date
	LeaveDays int
}

type Entry struct {
	Username string
	Password string
	Role     models.Role
	Profile  *Profile
}

func Defaults() []Entry {
	return []Entry{
		{
			Username: "admin", Password: "admin", Role: models.RoleAdmin,
			Profile: &Profile{"Admin User", "Operations Manager", 12000, models.NewDate(2022, time.January, 1), 25},
		},
		{
			Username: "kwame", Password: "password123", Role: models.RoleUser,
			Profile: &Profile{"Kwame Mensah", "Senior Stylist", 7200, models.NewDate(2023, time.June, 1), 18},
		},
		{
			Username: "ama", Password: "password123", Role: models.RoleUser,
			Profile: &Profile{"Ama Osei", "Color Specialist", 6800, models.NewDate(2024, time.February, 12), 15},
		},
		{
			Username: "yaw", Password: "password123", Role: models.RoleUser,
			Profile: &Profile{"Yaw Owusu", "Barber", 5400, models.NewDate(2023, time.September, 5), 12},
		},
		{
			Username: "efua", Password: "password123", Role: models.RoleUser,
			Profile: &Profile{"Efua Arko", "Reception Lead", 4800, models.NewDate(2024, time.May, 20), 20},
		},
	}
}

type Result struct {
	UsersCreated     int
	UsersUpdated     int
	EmployeesCreated int
	EmployeesUpdated int
}

// Run upserts entries in one transaction. Existing accounts get their
// password and role reset; existing profiles are overwritten.
func Run(ctx context.Context, repo staff.Repository, hasher Hasher, entries []Entry) (Result, error) {
	var res Result

	err := repo.Transaction(ctx, func(tx staff.Repository) error {
		for _, entry := range entries {
			digest, err := hasher.Hash(entry.Password)
			if err != nil {
				return err
			}

			u, err := tx.GetUserByUsername(ctx, entry.Username)
			switch {
			case errors.Is(err, staff.ErrNotFound):
				u = &models.User{Username: entry.Username, Role: entry.Role, PasswordHash: digest}
				if err := tx.CreateUser(ctx, u); err != nil {
					return err
				}
				res.UsersCreated++
			case err != nil:
				return err
			default:
				u.Role = entry.Role
				u.PasswordHash = digest
				if err := tx.UpdateUser(ctx, u); err != nil {
					return err
				}
				res.UsersUpdated++
			}

			if entry.Profile == nil {
				continue
			}

			e, err := tx.GetEmployeeByUserID(ctx, u.ID)
			created := false
			switch {
			case errors.Is(err, staff.ErrNotFound):
				userID := u.ID
				e = &models.Employee{UserID: &userID}
				created = true
			case err != nil:
				return err
			}

			start := entry.Profile.StartDate
			e.Name = entry.Profile.Name
			e.JobRole = entry.Profile.JobRole
			e.Salary = entry.Profile.Salary
			e.StartDate = &start
			e.LeaveDays = entry.Profile.LeaveDays

			if created {
				if err := tx.CreateEmployee(ctx, e); err != nil {
					return err
				}
				res.EmployeesCreated++
				continue
			}
			if err := tx.UpdateEmployee(ctx, e); err != nil {
				return err
			}
			res.EmployeesUpdated++
		}
		return nil
	})

	return res, err
}
