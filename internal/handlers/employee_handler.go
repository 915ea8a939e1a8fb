package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/dto"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/httpresp"
	"github.com/BruksfildServices01/staff-manager/internal/middleware"
	"github.com/BruksfildServices01/staff-manager/internal/timezone"
	ucEmployee "github.com/BruksfildServices01/staff-manager/internal/usecase/employee"
)

// ======================================================
// HANDLER
// ======================================================

type EmployeeHandler struct {
	listUC    *ucEmployee.ListEmployees
	getUC     *ucEmployee.GetEmployee
	createUC  *ucEmployee.CreateEmployee
	updateUC  *ucEmployee.UpdateEmployee
	deleteUC  *ucEmployee.DeleteEmployee
	exportUC  *ucEmployee.ExportEmployees
	archiveUC *ucEmployee.ArchiveEmployees
}

func NewEmployeeHandler(
	listUC *ucEmployee.ListEmployees,
	getUC *ucEmployee.GetEmployee,
	createUC *ucEmployee.CreateEmployee,
	updateUC *ucEmployee.UpdateEmployee,
	deleteUC *ucEmployee.DeleteEmployee,
	exportUC *ucEmployee.ExportEmployees,
	archiveUC *ucEmployee.ArchiveEmployees,
) *EmployeeHandler {
	return &EmployeeHandler{
		listUC:    listUC,
		getUC:     getUC,
		createUC:  createUC,
		updateUC:  updateUC,
		deleteUC:  deleteUC,
		exportUC:  exportUC,
		archiveUC: archiveUC,
	}
}

// ======================================================
// READ
// ======================================================

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.listUC.Execute(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Employees(employees))
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.Respond(c, ucEmployee.ErrEmployeeNotFound)
		return
	}

	e, err := h.getUC.Execute(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Employee(e))
}

// ======================================================
// WRITE
// ======================================================

func (h *EmployeeHandler) Create(c *gin.Context) {
	body, err := readJSON(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	e, err := h.createUC.Execute(c.Request.Context(), middleware.Principal(c), body.employeeInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.Employee(e))
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	// a malformed id reaches the use case as 0 so the role check runs first
	id, _ := paramID(c, "id")

	body, err := readJSON(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	e, err := h.updateUC.Execute(c.Request.Context(), middleware.Principal(c), id, ucEmployee.UpdateInput{
		Fields: body.employeeInput(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Employee(e))
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, _ := paramID(c, "id")

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.Principal(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Msg(c, http.StatusOK, "Employee deleted.")
}

// ======================================================
// EXPORT
// ======================================================

func (h *EmployeeHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.exportUC.Execute(c.Request.Context(), middleware.Principal(c), &buf); err != nil {
		httperr.Respond(c, err)
		return
	}

	filename := fmt.Sprintf("employees-%s.csv", timezone.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *EmployeeHandler) Archive(c *gin.Context) {
	res, err := h.archiveUC.Execute(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, gin.H{"location": res.Location, "rows": res.Rows})
}
