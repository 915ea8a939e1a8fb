package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/dto"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/httpresp"
	"github.com/BruksfildServices01/staff-manager/internal/middleware"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/account"
)

type UserHandler struct {
	listUC *account.ListUsers
}

func NewUserHandler(listUC *account.ListUsers) *UserHandler {
	return &UserHandler{listUC: listUC}
}

// List accepts ?without_profile=true to list only unprovisioned accounts.
func (h *UserHandler) List(c *gin.Context) {
	withoutProfile := c.Query("without_profile") == "true"

	users, err := h.listUC.Execute(c.Request.Context(), middleware.Principal(c), withoutProfile)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Users(users))
}
