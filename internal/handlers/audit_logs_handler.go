package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/dto"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/httpresp"
	"github.com/BruksfildServices01/staff-manager/internal/middleware"
	ucAudit "github.com/BruksfildServices01/staff-manager/internal/usecase/audit"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	listUC *ucAudit.ListAuditLogs
}

func NewAuditLogsHandler(listUC *ucAudit.ListAuditLogs) *AuditLogsHandler {
	return &AuditLogsHandler{listUC: listUC}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	res, err := h.listUC.Execute(c.Request.Context(), middleware.Principal(c), ucAudit.ListInput{
		Page:   page,
		Limit:  limit,
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, res.Page, res.Limit, res.Total, dto.AuditLogs(res.Logs))
}
