package employee_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/infra/repository"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/testutil"
	"github.com/BruksfildServices01/staff-manager/internal/usecase/employee"
)

type fixture struct {
	repo  *repository.StaffGormRepository
	admin *policy.Principal
	jane  *models.User
	bob   *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := testutil.NewRepo(t)

	admin := &models.User{Username: "admin", PasswordHash: "x", Role: models.RoleAdmin}
	jane := &models.User{Username: "jane", PasswordHash: "x", Role: models.RoleUser}
	bob := &models.User{Username: "bob", PasswordHash: "x", Role: models.RoleUser}
	for _, u := range []*models.User{admin, jane, bob} {
		require.NoError(t, repo.CreateUser(ctx, u))
	}

	return &fixture{
		repo:  repo,
		admin: &policy.Principal{UserID: admin.ID, Username: admin.Username, Role: admin.Role},
		jane:  jane,
		bob:   bob,
	}
}

func principal(u *models.User) *policy.Principal {
	return &policy.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func input(userID uint, name string) staff.EmployeeInput {
	return staff.EmployeeInput{
		UserID:  staff.Value(strconv.FormatUint(uint64(userID), 10)),
		Name:    staff.Value(name),
		JobRole: staff.Value("Engineer"),
		Salary:  staff.Value("4500.50"),
	}
}

func countEmployees(t *testing.T, repo staff.Repository) int {
	t.Helper()
	all, err := repo.ListEmployees(context.Background())
	require.NoError(t, err)
	return len(all)
}

func kindOf(err error) httperr.Kind {
	if be, ok := httperr.As(err); ok {
		return be.Kind
	}
	return 0
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := employee.NewCreateEmployee(f.repo)

	in := input(f.jane.ID, "Jane Doe")
	in.StartDate = staff.Value("2024-01-15")

	e, err := uc.Execute(ctx, f.admin, in)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", e.Name)
	assert.Equal(t, 4500.50, e.Salary)
	assert.Zero(t, e.LeaveDays)
	require.NotNil(t, e.StartDate)
	assert.Equal(t, "2024-01-15", e.StartDate.String())

	_, err = uc.Execute(ctx, f.admin, input(f.jane.ID, "Jane Again"))
	assert.ErrorIs(t, err, employee.ErrProfileExists)

	_, err = uc.Execute(ctx, f.admin, input(9999, "Nobody"))
	assert.ErrorIs(t, err, employee.ErrUserNotFound)

	_, err = uc.Execute(ctx, principal(f.bob), input(f.bob.ID, "Bob"))
	assert.Equal(t, httperr.KindAuthorization, kindOf(err))

	_, err = uc.Execute(ctx, nil, input(f.bob.ID, "Bob"))
	assert.Equal(t, httperr.KindAuthentication, kindOf(err))

	logs, _, err := f.repo.ListAuditLogs(ctx, staff.AuditFilter{Action: "employee_created", Limit: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].EntityID)
	assert.Equal(t, e.ID, *logs[0].EntityID)
}

func TestCreateEmployeeValidationLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := employee.NewCreateEmployee(f.repo)

	cases := map[string]func(in *staff.EmployeeInput){
		"missing name":    func(in *staff.EmployeeInput) { in.Name = staff.Absent() },
		"negative salary": func(in *staff.EmployeeInput) { in.Salary = staff.Value("-1") },
		"bad date":        func(in *staff.EmployeeInput) { in.StartDate = staff.Value("15/01/2024") },
		"bad leave":       func(in *staff.EmployeeInput) { in.LeaveDays = staff.Value("-3") },
		"bad user id":     func(in *staff.EmployeeInput) { in.UserID = staff.Value("abc") },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := input(f.jane.ID, "Jane")
			mutate(&in)
			_, err := uc.Execute(ctx, f.admin, in)
			assert.Equal(t, httperr.KindValidation, kindOf(err))
			assert.Zero(t, countEmployees(t, f.repo))
		})
	}
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := employee.NewCreateEmployee(f.repo).Execute(ctx, f.admin, input(f.jane.ID, "Jane"))
	require.NoError(t, err)

	uc := employee.NewUpdateEmployee(f.repo)

	e, err := uc.Execute(ctx, f.admin, created.ID, employee.UpdateInput{
		Fields: staff.EmployeeInput{Salary: staff.Value("5000")},
	})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, e.Salary)
	assert.Equal(t, "Jane", e.Name)
	assert.Equal(t, "Engineer", e.JobRole)

	// a bad field anywhere aborts the whole update
	_, err = uc.Execute(ctx, f.admin, created.ID, employee.UpdateInput{
		Fields: staff.EmployeeInput{Name: staff.Value("Renamed"), LeaveDays: staff.Value("many")},
	})
	assert.Equal(t, httperr.KindValidation, kindOf(err))

	stored, err := f.repo.GetEmployeeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", stored.Name)

	_, err = uc.Execute(ctx, f.admin, created.ID+100, employee.UpdateInput{
		Fields: staff.EmployeeInput{Name: staff.Value("Ghost")},
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = uc.Execute(ctx, principal(f.jane), created.ID, employee.UpdateInput{
		Fields: staff.EmployeeInput{Salary: staff.Value("99999")},
	})
	assert.Equal(t, httperr.KindAuthorization, kindOf(err))

	logs, _, err := f.repo.ListAuditLogs(ctx, staff.AuditFilter{Action: "employee_updated", Limit: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, `{"fields":["salary"]}`, logs[0].Metadata)
}

func TestUpdateEmployeeFormClearsNothingOnBlank(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := input(f.jane.ID, "Jane")
	in.StartDate = staff.Value("2023-05-01")
	in.LeaveDays = staff.Value("12")
	created, err := employee.NewCreateEmployee(f.repo).Execute(ctx, f.admin, in)
	require.NoError(t, err)

	e, err := employee.NewUpdateEmployee(f.repo).Execute(ctx, f.admin, created.ID, employee.UpdateInput{
		Form: true,
		Fields: staff.EmployeeInput{
			Name:      staff.Value("Jane D."),
			JobRole:   staff.Value("Lead"),
			Salary:    staff.Value("6000"),
			StartDate: staff.Value(""),
			LeaveDays: staff.Value(""),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", e.Name)
	require.NotNil(t, e.StartDate)
	assert.Equal(t, "2023-05-01", e.StartDate.String())
	assert.Equal(t, 12, e.LeaveDays)
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := employee.NewCreateEmployee(f.repo).Execute(ctx, f.admin, input(f.jane.ID, "Jane"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, f.repo.CreateLeaveRequest(ctx, &models.LeaveRequest{
			EmployeeID:  created.ID,
			StartDate:   models.NewDate(2024, 6, 1),
			EndDate:     models.NewDate(2024, 6, 3),
			Status:      models.LeaveStatusPending,
			RequestedAt: time.Now().UTC(),
		}))
	}

	uc := employee.NewDeleteEmployee(f.repo)
	assert.Equal(t, httperr.KindAuthorization, kindOf(uc.Execute(ctx, principal(f.jane), created.ID)))

	require.NoError(t, uc.Execute(ctx, f.admin, created.ID))
	assert.Zero(t, countEmployees(t, f.repo))

	left, err := f.repo.ListLeaveRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)

	// the account survives its profile
	_, err = f.repo.GetUserByID(ctx, f.jane.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, uc.Execute(ctx, f.admin, created.ID), employee.ErrEmployeeNotFound)
}

func TestMissingReferenceReportedBeforeFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := input(9999, "Nobody")
	in.Salary = staff.Value("lots")
	_, err := employee.NewCreateEmployee(f.repo).Execute(ctx, f.admin, in)
	assert.ErrorIs(t, err, employee.ErrUserNotFound)

	update := employee.NewUpdateEmployee(f.repo)
	_, err = update.Execute(ctx, f.admin, 9999, employee.UpdateInput{
		Fields: staff.EmployeeInput{LeaveDays: staff.Value("many")},
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = update.Execute(ctx, principal(f.jane), 0, employee.UpdateInput{})
	assert.Equal(t, httperr.KindAuthorization, kindOf(err))
	_, err = update.Execute(ctx, f.admin, 0, employee.UpdateInput{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	del := employee.NewDeleteEmployee(f.repo)
	assert.Equal(t, httperr.KindAuthorization, kindOf(del.Execute(ctx, principal(f.jane), 0)))
	assert.ErrorIs(t, del.Execute(ctx, f.admin, 0), employee.ErrEmployeeNotFound)
}

func TestListAndGetScopes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	create := employee.NewCreateEmployee(f.repo)
	jane, err := create.Execute(ctx, f.admin, input(f.jane.ID, "Jane"))
	require.NoError(t, err)
	bob, err := create.Execute(ctx, f.admin, input(f.bob.ID, "Bob"))
	require.NoError(t, err)

	list := employee.NewListEmployees(f.repo)

	all, err := list.Execute(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, jane.ID, all[0].ID)

	own, err := list.Execute(ctx, principal(f.jane))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, jane.ID, own[0].ID)

	_, err = list.Execute(ctx, nil)
	assert.Equal(t, httperr.KindAuthentication, kindOf(err))

	get := employee.NewGetEmployee(f.repo)

	got, err := get.Execute(ctx, principal(f.jane), jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)

	_, foreign := get.Execute(ctx, principal(f.jane), bob.ID)
	_, missing := get.Execute(ctx, principal(f.jane), 9999)
	assert.Equal(t, httperr.KindAuthorization, kindOf(foreign))
	assert.Equal(t, foreign.Error(), missing.Error())

	_, err = get.Execute(ctx, f.admin, 9999)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	mine := employee.NewGetMyProfile(f.repo)
	p, err := mine.Execute(ctx, principal(f.bob))
	require.NoError(t, err)
	assert.Equal(t, bob.ID, p.ID)

	p, err = mine.Execute(ctx, f.admin)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestListWithoutProfileIsEmpty(t *testing.T) {
	f := newFixture(t)
	own, err := employee.NewListEmployees(f.repo).Execute(context.Background(), principal(f.bob))
	require.NoError(t, err)
	assert.NotNil(t, own)
	assert.Empty(t, own)
}

func TestExportEmployees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := input(f.jane.ID, "Jane, Doe")
	in.StartDate = staff.Value("2024-01-15")
	_, err := employee.NewCreateEmployee(f.repo).Execute(ctx, f.admin, in)
	require.NoError(t, err)

	var buf bytes.Buffer
	uc := employee.NewExportEmployees(f.repo)
	rows, err := uc.Execute(ctx, f.admin, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "user_id", "name", "role", "salary", "salary_currency", "start_date", "leave_days"}, records[0])
	assert.Equal(t, "Jane, Doe", records[1][2])
	assert.Equal(t, "4500.50", records[1][4])
	assert.Equal(t, "GHS", records[1][5])
	assert.Equal(t, "2024-01-15", records[1][6])

	_, err = uc.Execute(ctx, principal(f.jane), &bytes.Buffer{})
	assert.Equal(t, httperr.KindAuthorization, kindOf(err))
}

type fakeSink struct {
	key  string
	body []byte
	err  error
}

func (s *fakeSink) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.key = key
	s.body = body
	return "s3://bucket/" + key, nil
}

func TestArchiveEmployees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := employee.NewCreateEmployee(f.repo).Execute(ctx, f.admin, input(f.jane.ID, "Jane"))
	require.NoError(t, err)

	export := employee.NewExportEmployees(f.repo)

	_, err = employee.NewArchiveEmployees(export, nil).Execute(ctx, f.admin)
	assert.ErrorIs(t, err, employee.ErrArchiveDisabled)

	sink := &fakeSink{}
	res, err := employee.NewArchiveEmployees(export, sink).Execute(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Regexp(t, `^exports/employees-\d{8}T\d{6}Z\.csv$`, sink.key)
	assert.Equal(t, "s3://bucket/"+sink.key, res.Location)
	assert.Contains(t, string(sink.body), "Jane")

	boom := errors.New("unreachable")
	_, err = employee.NewArchiveEmployees(export, &fakeSink{err: boom}).Execute(ctx, f.admin)
	assert.ErrorIs(t, err, boom)
}
