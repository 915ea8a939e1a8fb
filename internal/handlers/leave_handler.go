package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/dto"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/httpresp"
	"github.com/BruksfildServices01/staff-manager/internal/middleware"
	ucLeave "github.com/BruksfildServices01/staff-manager/internal/usecase/leave"
)

type LeaveHandler struct {
	listUC    *ucLeave.ListLeaveRequests
	submitUC  *ucLeave.SubmitLeaveRequest
	approveUC *ucLeave.ApproveLeaveRequest
}

func NewLeaveHandler(
	listUC *ucLeave.ListLeaveRequests,
	submitUC *ucLeave.SubmitLeaveRequest,
	approveUC *ucLeave.ApproveLeaveRequest,
) *LeaveHandler {
	return &LeaveHandler{listUC: listUC, submitUC: submitUC, approveUC: approveUC}
}

func (h *LeaveHandler) List(c *gin.Context) {
	list, err := h.listUC.Execute(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.LeaveRequests(list))
}

func (h *LeaveHandler) Submit(c *gin.Context) {
	body, err := readJSON(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	lr, err := h.submitUC.Execute(c.Request.Context(), middleware.Principal(c), staff.LeaveInput{
		StartDate: body.str("start_date"),
		EndDate:   body.str("end_date"),
		Reason:    body.str("reason"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.LeaveRequest(lr))
}

func (h *LeaveHandler) Approve(c *gin.Context) {
	id, _ := paramID(c, "id")

	res, err := h.approveUC.Execute(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":       res.Message,
		"changed":       res.Changed,
		"leave_request": dto.LeaveRequest(res.LeaveRequest),
	})
}
