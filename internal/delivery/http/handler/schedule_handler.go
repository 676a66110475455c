package handler

import (
	"net/http"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/sirupsen/logrus"
)

type ScheduleHandler struct {
	base
	scheduleUsecase usecase.ScheduleUsecase
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		base:            base{validator: validator, log: log},
		scheduleUsecase: scheduleUsecase,
	}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	schedule, err := h.scheduleUsecase.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", schedule)
}

// GetAll lists schedules visible to the caller; customers get an empty page.
func (h *ScheduleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	schedules, total, err := h.scheduleUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Schedules retrieved successfully", schedules, response.NewMeta(query.Page, query.Limit, total))
}

func (h *ScheduleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "schedule")
	if !ok {
		return
	}

	schedule, err := h.scheduleUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "schedule")
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	schedule, err := h.scheduleUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "schedule")
	if !ok {
		return
	}

	if err := h.scheduleUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", nil)
}
