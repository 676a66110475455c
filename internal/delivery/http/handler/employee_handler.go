package handler

import (
	"net/http"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/sirupsen/logrus"
)

type EmployeeHandler struct {
	base
	employeeUsecase usecase.EmployeeUsecase
}

func NewEmployeeHandler(employeeUsecase usecase.EmployeeUsecase, validator *validator.CustomValidator, log *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		base:            base{validator: validator, log: log},
		employeeUsecase: employeeUsecase,
	}
}

// Create handles employee creation
// @Summary Create an employee
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEmployeeRequest true "Create Employee Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	employee, err := h.employeeUsecase.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Employee created successfully", employee)
}

func (h *EmployeeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	employees, total, err := h.employeeUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Employees retrieved successfully", employees, response.NewMeta(query.Page, query.Limit, total))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "employee")
	if !ok {
		return
	}

	employee, err := h.employeeUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Employee retrieved successfully", employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "employee")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	employee, err := h.employeeUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Employee updated successfully", employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "employee")
	if !ok {
		return
	}

	if err := h.employeeUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Employee deleted successfully", nil)
}
