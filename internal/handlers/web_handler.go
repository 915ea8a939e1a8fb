package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/middleware"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/account"
	ucEmployee "github.com/BruksfildServices01/staff-manager/internal/usecase/employee"
	ucLeave "github.com/BruksfildServices01/staff-manager/internal/usecase/leave"
)

const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
	flashDanger  = "danger"
)

// WebUseCases groups everything the session-cookie surface calls into.
type WebUseCases struct {
	Verify    *account.VerifyCredentials
	Register  *account.RegisterUser
	ListUsers *account.ListUsers

	ListEmployees  *ucEmployee.ListEmployees
	GetEmployee    *ucEmployee.GetEmployee
	MyProfile      *ucEmployee.GetMyProfile
	CreateEmployee *ucEmployee.CreateEmployee
	UpdateEmployee *ucEmployee.UpdateEmployee
	DeleteEmployee *ucEmployee.DeleteEmployee

	ListLeave    *ucLeave.ListLeaveRequests
	SubmitLeave  *ucLeave.SubmitLeaveRequest
	ApproveLeave *ucLeave.ApproveLeaveRequest
}

type WebHandler struct {
	uc WebUseCases
}

func NewWebHandler(uc WebUseCases) *WebHandler {
	return &WebHandler{uc: uc}
}

// ======================================================
// RENDERING
// ======================================================

func (h *WebHandler) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Page"] = page
	data["Principal"] = middleware.Principal(c)
	if s := middleware.Session(c); s != nil {
		data["Flashes"] = s.PopFlashes()
	}
	c.HTML(status, "base", data)
}

func (h *WebHandler) redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusSeeOther, to)
}

func (h *WebHandler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found", nil)
}

// fail flashes business errors and redirects; anything else is a 500 page.
func (h *WebHandler) fail(c *gin.Context, err error, back string) {
	if be, ok := httperr.As(err); ok {
		if be.Kind == httperr.KindNotFound {
			h.notFound(c)
			return
		}
		middleware.Flash(c, flashDanger, be.Message)
		h.redirect(c, back)
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	h.render(c, http.StatusInternalServerError, "error", nil)
}

// requireLogin redirects anonymous visitors to the login page.
func (h *WebHandler) requireLogin(c *gin.Context) (*policy.Principal, bool) {
	p := middleware.Principal(c)
	if p == nil {
		middleware.Flash(c, flashWarning, "Please log in to access this page.")
		h.redirect(c, "/login")
		return nil, false
	}
	return p, true
}

// require checks action against the policy before a form is shown or
// processed, sending denied users back to the dashboard.
func (h *WebHandler) require(c *gin.Context, action policy.Action, denied string) (*policy.Principal, bool) {
	p, ok := h.requireLogin(c)
	if !ok {
		return nil, false
	}
	if !policy.Evaluate(p, action, policy.Target{}).Allowed {
		middleware.Flash(c, flashDanger, denied)
		h.redirect(c, "/")
		return nil, false
	}
	return p, true
}

// ======================================================
// AUTH
// ======================================================

func (h *WebHandler) LoginPage(c *gin.Context) {
	if middleware.Principal(c) != nil {
		h.redirect(c, "/")
		return
	}
	h.render(c, http.StatusOK, "login", nil)
}

func (h *WebHandler) Login(c *gin.Context) {
	if middleware.Principal(c) != nil {
		h.redirect(c, "/")
		return
	}

	u, err := h.uc.Verify.Execute(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if _, ok := httperr.As(err); !ok {
			h.fail(c, err, "/login")
			return
		}
		middleware.Flash(c, flashDanger, "Invalid username or password.")
		h.render(c, http.StatusOK, "login", gin.H{"Username": c.PostForm("username")})
		return
	}

	middleware.ReplaceSession(c, u.ID)
	middleware.Flash(c, flashSuccess, "Logged in successfully.")
	h.redirect(c, "/")
}

func (h *WebHandler) Logout(c *gin.Context) {
	if _, ok := h.requireLogin(c); !ok {
		return
	}
	middleware.ReplaceSession(c, 0)
	middleware.Flash(c, flashInfo, "You have been logged out.")
	h.redirect(c, "/login")
}

// registerGate applies the bootstrap rule before the form is shown.
func (h *WebHandler) registerGate(c *gin.Context) bool {
	p := middleware.Principal(c)
	initial := !h.uc.Register.Bootstrapped()

	d := policy.Evaluate(p, policy.ActionRegister, policy.Target{SystemEmpty: initial})
	if d.Allowed {
		return true
	}
	if p == nil {
		middleware.Flash(c, flashWarning, d.Reason)
		h.redirect(c, "/login")
		return false
	}
	middleware.Flash(c, flashDanger, d.Reason)
	h.redirect(c, "/")
	return false
}

func (h *WebHandler) RegisterPage(c *gin.Context) {
	if !h.registerGate(c) {
		return
	}
	h.render(c, http.StatusOK, "register", gin.H{"InitialSetup": !h.uc.Register.Bootstrapped()})
}

func (h *WebHandler) Register(c *gin.Context) {
	if !h.registerGate(c) {
		return
	}

	p := middleware.Principal(c)
	u, err := h.uc.Register.Execute(c.Request.Context(), p, account.RegisterInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Role:     c.PostForm("role"),
	})
	if err != nil {
		be, ok := httperr.As(err)
		if !ok {
			h.fail(c, err, "/register")
			return
		}
		middleware.Flash(c, flashDanger, be.Message)
		h.render(c, http.StatusOK, "register", gin.H{
			"InitialSetup": !h.uc.Register.Bootstrapped(),
			"Username":     c.PostForm("username"),
		})
		return
	}

	if p.IsAdmin() {
		middleware.Flash(c, flashSuccess, fmt.Sprintf("User '%s' added successfully.", u.Username))
		h.redirect(c, "/admin/manage")
		return
	}
	middleware.Flash(c, flashSuccess, "Registration successful. Please log in with your new credentials.")
	h.redirect(c, "/login")
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *WebHandler) Dashboard(c *gin.Context) {
	p, ok := h.requireLogin(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if p.IsAdmin() {
		employees, err := h.uc.ListEmployees.Execute(ctx, p)
		if err != nil {
			h.fail(c, err, "/login")
			return
		}
		requests, err := h.uc.ListLeave.Execute(ctx, p)
		if err != nil {
			h.fail(c, err, "/login")
			return
		}
		admins, err := h.uc.ListUsers.CountAdmins(ctx, p)
		if err != nil {
			h.fail(c, err, "/login")
			return
		}

		names := make(map[uint]string, len(employees))
		for _, e := range employees {
			names[e.ID] = e.Name
		}

		pending := 0
		for _, lr := range requests {
			if lr.Status == models.LeaveStatusPending {
				pending++
			}
		}

		h.render(c, http.StatusOK, "dashboard", gin.H{
			"Employees":     employees,
			"LeaveRequests": requests,
			"EmployeeNames": names,
			"PendingCount":  pending,
			"AdminCount":    admins,
			"Currency":      staff.SalaryCurrency,
		})
		return
	}

	profile, err := h.uc.MyProfile.Execute(ctx, p)
	if err != nil {
		h.fail(c, err, "/login")
		return
	}
	requests, err := h.uc.ListLeave.ExecuteOwn(ctx, p)
	if err != nil {
		h.fail(c, err, "/login")
		return
	}

	h.render(c, http.StatusOK, "profile", gin.H{
		"Employee":      profile,
		"LeaveRequests": requests,
		"Currency":      staff.SalaryCurrency,
	})
}

func (h *WebHandler) SubmitLeave(c *gin.Context) {
	p, ok := h.requireLogin(c)
	if !ok {
		return
	}

	_, err := h.uc.SubmitLeave.Execute(c.Request.Context(), p, staff.LeaveInput{
		StartDate: c.PostForm("start_date"),
		EndDate:   c.PostForm("end_date"),
		Reason:    c.PostForm("reason"),
	})
	if err != nil {
		if be, ok := httperr.As(err); ok && be.Code == "profile_missing" {
			middleware.Flash(c, flashWarning, be.Message)
			h.redirect(c, "/")
			return
		}
		h.fail(c, err, "/")
		return
	}

	middleware.Flash(c, flashSuccess, "Leave request submitted. We'll notify you once it's reviewed.")
	h.redirect(c, "/")
}

// ======================================================
// ADMIN
// ======================================================

func (h *WebHandler) ManagePage(c *gin.Context) {
	p, ok := h.require(c, policy.ActionListUsers, "Administrator privileges are required to access management tools.")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	users, err := h.uc.ListUsers.Execute(ctx, p, false)
	if err != nil {
		h.fail(c, err, "/")
		return
	}
	available, err := h.uc.ListUsers.Execute(ctx, p, true)
	if err != nil {
		h.fail(c, err, "/")
		return
	}
	employees, err := h.uc.ListEmployees.Execute(ctx, p)
	if err != nil {
		h.fail(c, err, "/")
		return
	}

	h.render(c, http.StatusOK, "manage", gin.H{
		"Users":          users,
		"AvailableUsers": available,
		"Employees":      employees,
		"Currency":       staff.SalaryCurrency,
	})
}

func (h *WebHandler) Manage(c *gin.Context) {
	p, ok := h.require(c, policy.ActionListUsers, "Administrator privileges are required to access management tools.")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	switch c.PostForm("form_type") {
	case "create_user":
		u, err := h.uc.Register.Execute(ctx, p, account.RegisterInput{
			Username: c.PostForm("username"),
			Password: c.PostForm("password"),
			Role:     c.PostForm("role"),
		})
		switch {
		case err == nil:
			middleware.Flash(c, flashSuccess, fmt.Sprintf("User '%s' created successfully.", u.Username))
		case httperr.IsBusiness(err, "username_taken"):
			middleware.Flash(c, flashWarning, "A user with that username already exists.")
		default:
			h.fail(c, err, "/admin/manage")
			return
		}

	case "create_employee":
		in := formEmployeeInput(c)
		in.JobRole = formField(c, "employee_role")

		if _, err := h.uc.CreateEmployee.Execute(ctx, p, in); err != nil {
			h.fail(c, err, "/admin/manage")
			return
		}
		middleware.Flash(c, flashSuccess, "Employee profile created successfully.")
	}

	h.redirect(c, "/admin/manage")
}

func (h *WebHandler) EditEmployeePage(c *gin.Context) {
	p, ok := h.require(c, policy.ActionUpdateEmployee, "Administrator privileges are required to edit employees.")
	if !ok {
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	e, err := h.uc.GetEmployee.Execute(c.Request.Context(), p, id)
	if err != nil {
		h.fail(c, err, "/")
		return
	}
	h.render(c, http.StatusOK, "edit", gin.H{"Employee": e})
}

func (h *WebHandler) EditEmployee(c *gin.Context) {
	p, ok := h.require(c, policy.ActionUpdateEmployee, "Administrator privileges are required to edit employees.")
	if !ok {
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	ctx := c.Request.Context()

	_, err := h.uc.UpdateEmployee.Execute(ctx, p, id, ucEmployee.UpdateInput{
		Fields: formEmployeeInput(c),
		Form:   true,
	})
	if err != nil {
		be, ok := httperr.As(err)
		if !ok || be.Kind == httperr.KindNotFound {
			h.fail(c, err, "/")
			return
		}

		e, getErr := h.uc.GetEmployee.Execute(ctx, p, id)
		if getErr != nil {
			h.fail(c, getErr, "/")
			return
		}
		middleware.Flash(c, flashDanger, be.Message)
		h.render(c, http.StatusOK, "edit", gin.H{"Employee": e})
		return
	}

	middleware.Flash(c, flashSuccess, "Employee updated successfully.")
	h.redirect(c, "/")
}

func (h *WebHandler) DeleteEmployee(c *gin.Context) {
	p, ok := h.require(c, policy.ActionDeleteEmployee, "Administrator privileges are required to delete employees.")
	if !ok {
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	if err := h.uc.DeleteEmployee.Execute(c.Request.Context(), p, id); err != nil {
		h.fail(c, err, "/")
		return
	}

	middleware.Flash(c, flashInfo, "Employee deleted successfully.")
	h.redirect(c, "/")
}

func (h *WebHandler) ApproveLeave(c *gin.Context) {
	p, ok := h.require(c, policy.ActionApproveLeave, "Administrator privileges are required to approve leave requests.")
	if !ok {
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	res, err := h.uc.ApproveLeave.Execute(c.Request.Context(), p, id)
	if err != nil {
		h.fail(c, err, "/")
		return
	}

	if res.Changed {
		middleware.Flash(c, flashSuccess, res.Message)
	} else {
		middleware.Flash(c, flashInfo, res.Message)
	}
	h.redirect(c, "/")
}
