package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditlog "github.com/BruksfildServices01/staff-manager/internal/audit"
	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/testutil"
	"github.com/BruksfildServices01/staff-manager/internal/timezone"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/audit"
)

func TestListAuditLogs(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewRepo(t)

	for i := 0; i < 25; i++ {
		require.NoError(t, auditlog.Log(ctx, repo, auditlog.Event{
			Action: auditlog.ActionEmployeeCreated,
			Entity: auditlog.EntityEmployee,
		}))
	}
	require.NoError(t, auditlog.Log(ctx, repo, auditlog.Event{
		Action:   auditlog.ActionUserCreated,
		Entity:   auditlog.EntityUser,
		Metadata: map[string]any{"username": "jane"},
	}))

	admin := &policy.Principal{UserID: 1, Username: "admin", Role: models.RoleAdmin}
	uc := audit.NewListAuditLogs(repo)

	res, err := uc.Execute(ctx, admin, audit.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, int64(26), res.Total)
	assert.Len(t, res.Logs, 20)

	res, err = uc.Execute(ctx, admin, audit.ListInput{Page: 2, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Limit)
	assert.Empty(t, res.Logs)

	res, err = uc.Execute(ctx, admin, audit.ListInput{Action: auditlog.ActionUserCreated})
	require.NoError(t, err)
	require.Len(t, res.Logs, 1)
	assert.Equal(t, `{"username":"jane"}`, res.Logs[0].Metadata)

	today := timezone.UTCNow().In(timezone.Current()).Format(models.DateLayout)
	res, err = uc.Execute(ctx, admin, audit.ListInput{From: today, To: today})
	require.NoError(t, err)
	assert.Equal(t, int64(26), res.Total)

	res, err = uc.Execute(ctx, admin, audit.ListInput{From: "2000-01-01", To: "2000-01-31"})
	require.NoError(t, err)
	assert.Zero(t, res.Total)

	_, err = uc.Execute(ctx, admin, audit.ListInput{From: "yesterday"})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	user := &policy.Principal{UserID: 2, Username: "jane", Role: models.RoleUser}
	_, err = uc.Execute(ctx, user, audit.ListInput{})
	assert.True(t, httperr.IsKind(err, httperr.KindAuthorization))
}
