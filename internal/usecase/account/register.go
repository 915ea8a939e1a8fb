package account

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/BruksfildServices01/staff-manager/internal/audit"
	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Username string
	Password string
	// Role is the raw requested role; empty means unset.
	Role string
}

var ErrUsernameTaken = httperr.Conflict("username", "username_taken", "Username already exists.")

// ======================================================
// USE CASE
// ======================================================

// RegisterUser creates accounts. It owns the bootstrap decision: while no
// account is known to exist, every call re-counts users under a table lock so
// two concurrent first registrations cannot both become admin.
type RegisterUser struct {
	repo   staff.Repository
	hasher Hasher

	bootstrapped atomic.Bool
}

func NewRegisterUser(repo staff.Repository, hasher Hasher) *RegisterUser {
	return &RegisterUser{repo: repo, hasher: hasher}
}

// Init records whether the store already holds accounts.
func (uc *RegisterUser) Init(ctx context.Context) error {
	n, err := uc.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	uc.bootstrapped.Store(n > 0)
	return nil
}

// Bootstrapped reports whether at least one account is known to exist.
func (uc *RegisterUser) Bootstrapped() bool {
	return uc.bootstrapped.Load()
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RegisterUser) Execute(
	ctx context.Context,
	p *policy.Principal,
	in RegisterInput,
) (*models.User, error) {

	var created *models.User

	err := uc.repo.Transaction(ctx, func(tx staff.Repository) error {
		empty := false
		if !uc.bootstrapped.Load() {
			if err := tx.LockUsers(ctx); err != nil {
				return err
			}
			n, err := tx.CountUsers(ctx)
			if err != nil {
				return err
			}
			empty = n == 0
			if !empty {
				uc.bootstrapped.Store(true)
			}
		}

		if _, err := policy.Authorize(p, policy.ActionRegister, policy.Target{SystemEmpty: empty}); err != nil {
			return err
		}

		creds, err := staff.Credentials{Username: in.Username, Password: in.Password}.Normalize()
		if err != nil {
			return err
		}

		role, err := staff.ResolveRole(in.Role, empty)
		if err != nil {
			return err
		}

		digest, err := uc.hasher.Hash(creds.Password)
		if err != nil {
			return err
		}

		u := &models.User{
			Username:     creds.Username,
			PasswordHash: digest,
			Role:         role,
		}
		if err := tx.CreateUser(ctx, u); err != nil {
			if errors.Is(err, staff.ErrDuplicate) {
				return ErrUsernameTaken
			}
			return err
		}

		var actor *uint
		if p != nil {
			actor = audit.ID(p.UserID)
		}
		if err := audit.Log(ctx, tx, audit.Event{
			UserID:   actor,
			Action:   audit.ActionUserCreated,
			Entity:   audit.EntityUser,
			EntityID: &u.ID,
			Metadata: map[string]any{"username": u.Username, "role": u.Role},
		}); err != nil {
			return err
		}

		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.bootstrapped.Store(true)
	return created, nil
}
