package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/timezone"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type ListInput struct {
	Page   int
	Limit  int
	Action string
	Entity string
	// From and To are YYYY-MM-DD dates in the application timezone; To is
	// inclusive.
	From string
	To   string
}

type ListResult struct {
	Page  int
	Limit int
	Total int64
	Logs  []models.AuditLog
}

type ListAuditLogs struct {
	repo staff.Repository
}

func NewListAuditLogs(repo staff.Repository) *ListAuditLogs {
	return &ListAuditLogs{repo: repo}
}

func (uc *ListAuditLogs) Execute(
	ctx context.Context,
	p *policy.Principal,
	in ListInput,
) (*ListResult, error) {

	if _, err := policy.Authorize(p, policy.ActionViewAuditLog, policy.Target{}); err != nil {
		return nil, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	f := staff.AuditFilter{
		Action: in.Action,
		Entity: in.Entity,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if in.From != "" {
		from, err := parseDay(in.From)
		if err != nil {
			return nil, httperr.Validation("from", "invalid_from", "from must be in YYYY-MM-DD format.")
		}
		f.From = &from
	}
	if in.To != "" {
		to, err := parseDay(in.To)
		if err != nil {
			return nil, httperr.Validation("to", "invalid_to", "to must be in YYYY-MM-DD format.")
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}

	logs, total, err := uc.repo.ListAuditLogs(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ListResult{Page: page, Limit: limit, Total: total, Logs: logs}, nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout, s, timezone.Current())
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
