package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/dto"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/httpresp"
	"github.com/BruksfildServices01/staff-manager/internal/middleware"
	ucEmployee "github.com/BruksfildServices01/staff-manager/internal/usecase/employee"
)

type MeHandler struct {
	profile *ucEmployee.GetMyProfile
}

func NewMeHandler(profile *ucEmployee.GetMyProfile) *MeHandler {
	return &MeHandler{profile: profile}
}

type meResponse struct {
	User     gin.H            `json:"user"`
	Employee *dto.EmployeeDTO `json:"employee"`
}

// GetMe returns the caller and their profile; employee is null when the
// account is not provisioned yet.
func (h *MeHandler) GetMe(c *gin.Context) {
	p := middleware.Principal(c)

	e, err := h.profile.Execute(c.Request.Context(), p)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	resp := meResponse{User: gin.H{
		"id":       p.UserID,
		"username": p.Username,
		"role":     p.Role,
	}}
	if e != nil {
		d := dto.Employee(e)
		resp.Employee = &d
	}

	httpresp.OK(c, resp)
}
