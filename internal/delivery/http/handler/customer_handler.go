package handler

import (
	"net/http"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/sirupsen/logrus"
)

type CustomerHandler struct {
	base
	customerUsecase usecase.CustomerUsecase
}

func NewCustomerHandler(customerUsecase usecase.CustomerUsecase, validator *validator.CustomValidator, log *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{
		base:            base{validator: validator, log: log},
		customerUsecase: customerUsecase,
	}
}

func (h *CustomerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	customers, total, err := h.customerUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Customers retrieved successfully", customers, response.NewMeta(query.Page, query.Limit, total))
}

func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Customer retrieved successfully", customer)
}

// Update applies a partial profile update. Fields sent as null clear the
// optional phone number and address.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "customer")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if !h.decode(w, r, &req) {
		return
	}

	customer, err := h.customerUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Customer updated successfully", customer)
}

// Delete removes the customer with their appointments, payments and feedback.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "customer")
	if !ok {
		return
	}

	if err := h.customerUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Customer deleted successfully", nil)
}
