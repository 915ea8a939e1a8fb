package staff

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type AuditFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Repository is the relational store behind every use case. Use cases that
// write call Transaction and use only the handle passed to fn.
type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Users --------
	LockUsers(ctx context.Context) error
	CountUsers(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersWithoutEmployee(ctx context.Context) ([]models.User, error)

	// -------- Employees --------
	CreateEmployee(ctx context.Context, e *models.Employee) error
	UpdateEmployee(ctx context.Context, e *models.Employee) error
	DeleteEmployee(ctx context.Context, id uint) error
	GetEmployeeByID(ctx context.Context, id uint) (*models.Employee, error)
	GetEmployeeByUserID(ctx context.Context, userID uint) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)

	// -------- Leave requests --------
	CreateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error
	UpdateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error
	GetLeaveRequestForUpdate(ctx context.Context, id uint) (*models.LeaveRequest, error)
	ListLeaveRequests(ctx context.Context) ([]models.LeaveRequest, error)
	ListLeaveRequestsForEmployee(ctx context.Context, employeeID uint) ([]models.LeaveRequest, error)

	// -------- Audit --------
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, int64, error)
}
