package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/staff-manager/internal/config"
	"github.com/BruksfildServices01/staff-manager/internal/handlers"
	infraRepo "github.com/BruksfildServices01/staff-manager/internal/infra/repository"
	"github.com/BruksfildServices01/staff-manager/internal/infra/session"
	"github.com/BruksfildServices01/staff-manager/internal/middleware"
	"github.com/BruksfildServices01/staff-manager/internal/token"
	ucAccount "github.com/BruksfildServices01/staff-manager/internal/usecase/account"
	ucAudit "github.com/BruksfildServices01/staff-manager/internal/usecase/audit"
	ucEmployee "github.com/BruksfildServices01/staff-manager/internal/usecase/employee"
	ucLeave "github.com/BruksfildServices01/staff-manager/internal/usecase/leave"
)

// Infra carries the process-level collaborators built in main.
type Infra struct {
	Sessions session.Store
	// Archive is nil when no bucket is configured.
	Archive ucEmployee.ArchiveSink
	// Hasher defaults to bcrypt at the configured cost.
	Hasher ucAccount.Hasher
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) error {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	staffRepo := infraRepo.NewStaffGormRepository(db)

	hasher := infra.Hasher
	if hasher == nil {
		hasher = ucAccount.NewBcryptHasher(cfg.BcryptCost)
	}
	sessions := infra.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTExpiration)

	// engine-wide so preflights for unregistered OPTIONS routes are answered
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// USE CASES: ACCOUNTS
	// ======================================================
	registerUC := ucAccount.NewRegisterUser(staffRepo, hasher)
	if err := registerUC.Init(context.Background()); err != nil {
		return fmt.Errorf("init registration: %w", err)
	}
	verifyUC := ucAccount.NewVerifyCredentials(staffRepo, hasher)
	loginUC := ucAccount.NewLogin(verifyUC, issuer)
	principalUC := ucAccount.NewResolvePrincipal(staffRepo)
	listUsersUC := ucAccount.NewListUsers(staffRepo)

	// ======================================================
	// USE CASES: EMPLOYEES / LEAVE / AUDIT
	// ======================================================
	listEmployeesUC := ucEmployee.NewListEmployees(staffRepo)
	getEmployeeUC := ucEmployee.NewGetEmployee(staffRepo)
	myProfileUC := ucEmployee.NewGetMyProfile(staffRepo)
	createEmployeeUC := ucEmployee.NewCreateEmployee(staffRepo)
	updateEmployeeUC := ucEmployee.NewUpdateEmployee(staffRepo)
	deleteEmployeeUC := ucEmployee.NewDeleteEmployee(staffRepo)
	exportEmployeesUC := ucEmployee.NewExportEmployees(staffRepo)
	archiveEmployeesUC := ucEmployee.NewArchiveEmployees(exportEmployeesUC, infra.Archive)

	listLeaveUC := ucLeave.NewListLeaveRequests(staffRepo)
	submitLeaveUC := ucLeave.NewSubmitLeaveRequest(staffRepo)
	approveLeaveUC := ucLeave.NewApproveLeaveRequest(staffRepo)

	listAuditUC := ucAudit.NewListAuditLogs(staffRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC)
	meHandler := handlers.NewMeHandler(myProfileUC)
	userHandler := handlers.NewUserHandler(listUsersUC)
	employeeHandler := handlers.NewEmployeeHandler(
		listEmployeesUC,
		getEmployeeUC,
		createEmployeeUC,
		updateEmployeeUC,
		deleteEmployeeUC,
		exportEmployeesUC,
		archiveEmployeesUC,
	)
	leaveHandler := handlers.NewLeaveHandler(listLeaveUC, submitLeaveUC, approveLeaveUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(listAuditUC)

	webHandler := handlers.NewWebHandler(handlers.WebUseCases{
		Verify:         verifyUC,
		Register:       registerUC,
		ListUsers:      listUsersUC,
		ListEmployees:  listEmployeesUC,
		GetEmployee:    getEmployeeUC,
		MyProfile:      myProfileUC,
		CreateEmployee: createEmployeeUC,
		UpdateEmployee: updateEmployeeUC,
		DeleteEmployee: deleteEmployeeUC,
		ListLeave:      listLeaveUC,
		SubmitLeave:    submitLeaveUC,
		ApproveLeave:   approveLeaveUC,
	})

	tmpl, err := handlers.LoadTemplates()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// ======================================================
	// WEB (HTML, session cookie)
	// ======================================================
	web := r.Group("/")
	web.Use(middleware.SessionMiddleware(sessions, cfg.SessionCookieName, cfg.SessionTTL, principalUC))
	{
		web.GET("/login", webHandler.LoginPage)
		web.POST("/login", webHandler.Login)
		web.GET("/logout", webHandler.Logout)
		web.GET("/register", webHandler.RegisterPage)
		web.POST("/register", webHandler.Register)

		web.GET("/", webHandler.Dashboard)
		web.POST("/", webHandler.SubmitLeave)

		web.GET("/admin/manage", webHandler.ManagePage)
		web.POST("/admin/manage", webHandler.Manage)

		web.GET("/employees/:id/edit", webHandler.EditEmployeePage)
		web.POST("/employees/:id/edit", webHandler.EditEmployee)
		web.POST("/employees/:id/delete", webHandler.DeleteEmployee)

		web.POST("/leave-requests/:id/approve", webHandler.ApproveLeave)
	}

	// ======================================================
	// API (JSON, bearer token)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", middleware.OptionalAuthMiddleware(issuer, principalUC), authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// TOKEN OPTIONAL
		// ------------------------------
		api.GET("/employees", middleware.OptionalAuthMiddleware(issuer, principalUC), employeeHandler.List)

		// ------------------------------
		// TOKEN REQUIRED
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(issuer, principalUC))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/users", userHandler.List)

			secured.GET("/employees/export", employeeHandler.Export)
			secured.POST("/employees/export/archive", employeeHandler.Archive)
			secured.GET("/employees/:id", employeeHandler.Get)
			secured.POST("/employees", employeeHandler.Create)
			secured.PUT("/employees/:id", employeeHandler.Update)
			secured.DELETE("/employees/:id", employeeHandler.Delete)

			secured.GET("/leave-requests", leaveHandler.List)
			secured.POST("/leave-requests", leaveHandler.Submit)
			secured.POST("/leave-requests/:id/approve", leaveHandler.Approve)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
