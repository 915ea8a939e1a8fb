package staff

import (
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/models"
	"github.com/BruksfildServices01/staff-manager/internal/validators"
)

// SalaryCurrency is the display currency attached to every salary.
const SalaryCurrency = "GHS"

type EmployeeInput struct {
	UserID    Field
	Name      Field
	JobRole   Field
	Salary    Field
	StartDate Field
	LeaveDays Field
}

// EmployeeChanges holds validated values; nil means "leave untouched".
type EmployeeChanges struct {
	Name           *string
	JobRole        *string
	Salary         *float64
	StartDate      *models.Date
	ClearStartDate bool
	LeaveDays      *int
}

func (ch EmployeeChanges) Apply(e *models.Employee) {
	if ch.Name != nil {
		e.Name = *ch.Name
	}
	if ch.JobRole != nil {
		e.JobRole = *ch.JobRole
	}
	if ch.Salary != nil {
		e.Salary = *ch.Salary
	}
	if ch.ClearStartDate {
		e.StartDate = nil
	} else if ch.StartDate != nil {
		d := *ch.StartDate
		e.StartDate = &d
	}
	if ch.LeaveDays != nil {
		e.LeaveDays = *ch.LeaveDays
	}
}

var (
	errUserIDInvalid = httperr.Validation("user_id", "invalid_user_id", "user_id is required and must be an integer.")
	errRequired      = httperr.Validation("", "missing_fields", "name, role, and salary are required.")
	errName          = httperr.Validation("name", "invalid_name", "name cannot be empty.")
	errJobRole       = httperr.Validation("role", "invalid_role", "role cannot be empty.")
	errSalary        = httperr.Validation("salary", "invalid_salary", "salary must be a non-negative number.")
	errStartDate     = httperr.Validation("start_date", "invalid_start_date", "start_date must be in YYYY-MM-DD format.")
	errLeaveDays     = httperr.Validation("leave_days", "invalid_leave_days", "leave_days must be a non-negative integer.")
)

func ParseUserID(f Field) (uint, error) {
	if !f.Set {
		return 0, errUserIDInvalid
	}
	id, err := validators.NonNegativeInt(f.Value)
	if err != nil || id == 0 {
		return 0, errUserIDInvalid
	}
	return uint(id), nil
}

// ParseNewEmployee validates a creation payload: name, job role and salary
// are required, start date is optional and leave days default to 0.
func ParseNewEmployee(in EmployeeInput) (EmployeeChanges, error) {
	if blank(in.Name) || blank(in.JobRole) || blank(in.Salary) {
		return EmployeeChanges{}, errRequired
	}

	ch, err := ParseEmployeeChanges(in)
	if err != nil {
		return EmployeeChanges{}, err
	}

	ch.ClearStartDate = false
	if ch.LeaveDays == nil {
		zero := 0
		ch.LeaveDays = &zero
	}
	return ch, nil
}

// ParseEmployeeChanges validates only the fields present in the input, in
// declaration order, stopping at the first failure.
func ParseEmployeeChanges(in EmployeeInput) (EmployeeChanges, error) {
	var ch EmployeeChanges

	if in.Name.Set {
		v, err := validators.NonBlank(in.Name.Value)
		if err != nil {
			return EmployeeChanges{}, errName
		}
		ch.Name = &v
	}

	if in.JobRole.Set {
		v, err := validators.NonBlank(in.JobRole.Value)
		if err != nil {
			return EmployeeChanges{}, errJobRole
		}
		ch.JobRole = &v
	}

	if in.Salary.Set {
		v, err := validators.NonNegativeFloat(in.Salary.Value)
		if err != nil {
			return EmployeeChanges{}, errSalary
		}
		ch.Salary = &v
	}

	if in.StartDate.Set {
		if blank(in.StartDate) {
			ch.ClearStartDate = true
		} else {
			d, err := validators.ISODate(in.StartDate.Value)
			if err != nil {
				return EmployeeChanges{}, errStartDate
			}
			ch.StartDate = &d
		}
	}

	if in.LeaveDays.Set {
		v, err := validators.NonNegativeInt(in.LeaveDays.Value)
		if err != nil {
			return EmployeeChanges{}, errLeaveDays
		}
		ch.LeaveDays = &v
	}

	return ch, nil
}

func blank(f Field) bool {
	_, err := validators.NonBlank(f.Value)
	return !f.Set || err != nil
}

// ParseEmployeeForm validates a full edit form: name, job role and salary are
// required, and a blank start date or leave balance keeps the current value.
func ParseEmployeeForm(in EmployeeInput) (EmployeeChanges, error) {
	if blank(in.Name) || blank(in.JobRole) || blank(in.Salary) {
		return EmployeeChanges{}, errRequired
	}
	if blank(in.StartDate) {
		in.StartDate = Absent()
	}
	if blank(in.LeaveDays) {
		in.LeaveDays = Absent()
	}
	return ParseEmployeeChanges(in)
}
