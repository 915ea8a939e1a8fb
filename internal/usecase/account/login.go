package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

var ErrInvalidCredentials = httperr.Authentication("invalid_credentials", "Invalid credentials.")

// VerifyCredentials checks a username/password pair. Blank input, unknown
// usernames and wrong passwords fail identically.
type VerifyCredentials struct {
	repo   staff.Repository
	hasher Hasher
}

func NewVerifyCredentials(repo staff.Repository, hasher Hasher) *VerifyCredentials {
	return &VerifyCredentials{repo: repo, hasher: hasher}
}

func (uc *VerifyCredentials) Execute(
	ctx context.Context,
	username string,
	password string,
) (*models.User, error) {

	creds, err := staff.Credentials{Username: username, Password: password}.Normalize()
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := uc.repo.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			uc.hasher.Compare("", creds.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.hasher.Compare(u.PasswordHash, creds.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

type LoginResult struct {
	AccessToken string
	User        *models.User
}

// Login verifies credentials and issues a bearer token.
type Login struct {
	verify *VerifyCredentials
	issuer TokenIssuer
}

func NewLogin(verify *VerifyCredentials, issuer TokenIssuer) *Login {
	return &Login{verify: verify, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := uc.verify.Execute(ctx, username, password)
	if err != nil {
		return nil, err
	}

	tok, err := uc.issuer.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: tok, User: u}, nil
}
