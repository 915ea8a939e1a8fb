package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type StaffGormRepository struct {
	db *gorm.DB
}

func NewStaffGormRepository(db *gorm.DB) *StaffGormRepository {
	return &StaffGormRepository{db: db}
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return staff.ErrNotFound
	}
	if isUniqueViolation(err) {
		return errors.Join(staff.ErrDuplicate, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// sqlite serializes writers through a single connection and has no row locks.
func (r *StaffGormRepository) locking() bool {
	return r.db.Dialector.Name() != "sqlite"
}

func (r *StaffGormRepository) Transaction(
	ctx context.Context,
	fn func(tx staff.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&StaffGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *StaffGormRepository) LockUsers(ctx context.Context) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec(`LOCK TABLE "user" IN SHARE ROW EXCLUSIVE MODE`).Error
}

func (r *StaffGormRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, translate(err)
}

func (r *StaffGormRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error
	return count, translate(err)
}

func (r *StaffGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *StaffGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error)
}

func (r *StaffGormRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *StaffGormRepository) GetUserByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *StaffGormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (r *StaffGormRepository) ListUsersWithoutEmployee(
	ctx context.Context,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("id NOT IN (?)",
			r.db.Model(&models.Employee{}).
				Select("user_id").
				Where("user_id IS NOT NULL"),
		).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// --------------------------------------------------
// Employees
// --------------------------------------------------

func (r *StaffGormRepository) CreateEmployee(ctx context.Context, e *models.Employee) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

func (r *StaffGormRepository) UpdateEmployee(ctx context.Context, e *models.Employee) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error)
}

// DeleteEmployee removes the profile and its leave requests. Both statements
// run on the receiver, so callers wanting atomicity call it on a tx handle.
func (r *StaffGormRepository) DeleteEmployee(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)

	if err := db.
		Where("employee_id = ?", id).
		Delete(&models.LeaveRequest{}).Error; err != nil {
		return translate(err)
	}

	res := db.Delete(&models.Employee{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return staff.ErrNotFound
	}
	return nil
}

func (r *StaffGormRepository) GetEmployeeByID(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	q := r.db.WithContext(ctx)
	if r.locking() {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var e models.Employee
	if err := q.First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *StaffGormRepository) GetEmployeeByUserID(
	ctx context.Context,
	userID uint,
) (*models.Employee, error) {

	var e models.Employee
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *StaffGormRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		return nil, translate(err)
	}
	return employees, nil
}

// --------------------------------------------------
// Leave requests
// --------------------------------------------------

func (r *StaffGormRepository) CreateLeaveRequest(
	ctx context.Context,
	lr *models.LeaveRequest,
) error {
	return translate(r.db.WithContext(ctx).Create(lr).Error)
}

func (r *StaffGormRepository) UpdateLeaveRequest(
	ctx context.Context,
	lr *models.LeaveRequest,
) error {
	return translate(r.db.WithContext(ctx).Save(lr).Error)
}

func (r *StaffGormRepository) GetLeaveRequestForUpdate(
	ctx context.Context,
	id uint,
) (*models.LeaveRequest, error) {

	q := r.db.WithContext(ctx)
	if r.locking() {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var lr models.LeaveRequest
	if err := q.First(&lr, id).Error; err != nil {
		return nil, translate(err)
	}
	return &lr, nil
}

func (r *StaffGormRepository) ListLeaveRequests(
	ctx context.Context,
) ([]models.LeaveRequest, error) {

	var out []models.LeaveRequest
	if err := r.db.WithContext(ctx).
		Order("status ASC").
		Order("requested_at DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *StaffGormRepository) ListLeaveRequestsForEmployee(
	ctx context.Context,
	employeeID uint,
) ([]models.LeaveRequest, error) {

	var out []models.LeaveRequest
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("requested_at DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *StaffGormRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return translate(r.db.WithContext(ctx).Create(log).Error)
}

func (r *StaffGormRepository) ListAuditLogs(
	ctx context.Context,
	f staff.AuditFilter,
) ([]models.AuditLog, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, translate(err)
	}

	return logs, total, nil
}

// Compile-time check
var _ staff.Repository = (*StaffGormRepository)(nil)
