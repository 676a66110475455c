package handler

import (
	"net/http"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/sirupsen/logrus"
)

type PaymentHandler struct {
	base
	paymentUsecase usecase.PaymentUsecase
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		base:           base{validator: validator, log: log},
		paymentUsecase: paymentUsecase,
	}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	payment, err := h.paymentUsecase.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Payment created successfully", payment)
}

func (h *PaymentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	payments, total, err := h.paymentUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Payments retrieved successfully", payments, response.NewMeta(query.Page, query.Limit, total))
}

func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Payment retrieved successfully", payment)
}

// Update lets admins change any field; customers may only mark their own
// payment Completed.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "payment")
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	payment, err := h.paymentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Payment updated successfully", payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "payment")
	if !ok {
		return
	}

	if err := h.paymentUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Payment deleted successfully", nil)
}
