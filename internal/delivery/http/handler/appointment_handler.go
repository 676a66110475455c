package handler

import (
	"net/http"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentHandler struct {
	base
	appointmentUsecase  usecase.AppointmentUsecase
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAppointmentHandler(
	appointmentUsecase usecase.AppointmentUsecase,
	availabilityUsecase usecase.AvailabilityUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		base:                base{validator: validator, log: log},
		appointmentUsecase:  appointmentUsecase,
		availabilityUsecase: availabilityUsecase,
	}
}

// Create handles booking an appointment
// @Summary Book an appointment
// @Description Customers book for themselves, admins on behalf of a customer.
// @Description Supplying payment_method also opens a Pending payment.
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	appointments, total, err := h.appointmentUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments, response.NewMeta(query.Page, query.Limit, total))
}

// AvailableEmployees lists employees free for the whole duration of the
// service starting at appointment_date
// @Summary Find available employees
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param service_id query string true "Service ID"
// @Param appointment_date query string true "RFC3339 or YYYY-MM-DDTHH:MM (UTC)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/available-employees [get]
func (h *AppointmentHandler) AvailableEmployees(w http.ResponseWriter, r *http.Request) {
	query := dto.AvailabilityQuery{
		AppointmentDate: r.URL.Query().Get("appointment_date"),
	}
	if raw := r.URL.Query().Get("service_id"); raw != "" {
		serviceID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
			return
		}
		query.ServiceID = serviceID
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	available, err := h.availabilityUsecase.FindAvailableEmployees(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Available employees retrieved successfully", available)
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
