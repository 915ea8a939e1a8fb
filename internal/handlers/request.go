package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/domain/staff"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
)

type jsonBody map[string]json.RawMessage

var errInvalidBody = httperr.Validation("", "invalid_request", "Request body must be a JSON object.")

// readJSON decodes the body as an object of raw values, so handlers can tell
// absent keys from empty ones. An empty body is an empty object.
func readJSON(c *gin.Context) (jsonBody, error) {
	body := jsonBody{}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return body, nil
	}

	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return jsonBody{}, nil
		}
		return nil, errInvalidBody
	}
	if body == nil {
		body = jsonBody{}
	}
	return body, nil
}

// field converts one JSON value to its textual form. Strings are unquoted,
// numbers keep their literal, null becomes present-but-empty.
func (b jsonBody) field(key string) staff.Field {
	raw, ok := b[key]
	if !ok {
		return staff.Absent()
	}

	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return staff.Value("")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return staff.Value(s)
	}
	return staff.Value(string(raw))
}

func (b jsonBody) str(key string) string {
	return b.field(key).Value
}

func (b jsonBody) employeeInput() staff.EmployeeInput {
	return staff.EmployeeInput{
		UserID:    b.field("user_id"),
		Name:      b.field("name"),
		JobRole:   b.field("role"),
		Salary:    b.field("salary"),
		StartDate: b.field("start_date"),
		LeaveDays: b.field("leave_days"),
	}
}

// formField reads a posted form value, treating a missing key as absent.
func formField(c *gin.Context, key string) staff.Field {
	v, ok := c.GetPostForm(key)
	if !ok {
		return staff.Absent()
	}
	return staff.Value(v)
}

func formEmployeeInput(c *gin.Context) staff.EmployeeInput {
	return staff.EmployeeInput{
		UserID:    formField(c, "user_id"),
		Name:      formField(c, "name"),
		JobRole:   formField(c, "role"),
		Salary:    formField(c, "salary"),
		StartDate: formField(c, "start_date"),
		LeaveDays: formField(c, "leave_days"),
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
