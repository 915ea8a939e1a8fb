package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

var ErrUnknownPrincipal = httperr.Authentication("invalid_token", "Authentication required.")

// ResolvePrincipal turns an authenticated user id into the principal the
// policy evaluates. Role always comes from the store, never from the token.
type ResolvePrincipal struct {
	repo staff.Repository
}

func NewResolvePrincipal(repo staff.Repository) *ResolvePrincipal {
	return &ResolvePrincipal{repo: repo}
}

func (uc *ResolvePrincipal) Execute(ctx context.Context, userID uint) (*policy.Principal, error) {
	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return nil, ErrUnknownPrincipal
		}
		return nil, err
	}
	return PrincipalOf(u), nil
}

func PrincipalOf(u *models.User) *policy.Principal {
	return &policy.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}
