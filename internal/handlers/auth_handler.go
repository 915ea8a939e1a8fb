package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/dto"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/httpresp"
	"github.com/BruksfildServices01/staff-manager/internal/middleware"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/account"
)

type AuthHandler struct {
	register *account.RegisterUser
	login    *account.Login
}

func NewAuthHandler(register *account.RegisterUser, login *account.Login) *AuthHandler {
	return &AuthHandler{register: register, login: login}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	body, err := readJSON(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	_, err = h.register.Execute(c.Request.Context(), middleware.Principal(c), account.RegisterInput{
		Username: body.str("username"),
		Password: body.str("password"),
		Role:     body.str("role"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Msg(c, http.StatusCreated, "Registration successful.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	body, err := readJSON(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), body.str("username"), body.str("password"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.LoginResponse{
		AccessToken: res.AccessToken,
		User: dto.UserSummaryDTO{
			Username: res.User.Username,
			Role:     res.User.Role,
		},
	})
}
