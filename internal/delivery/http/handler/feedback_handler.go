package handler

import (
	"net/http"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/sirupsen/logrus"
)

type FeedbackHandler struct {
	base
	feedbackUsecase usecase.FeedbackUsecase
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator, log *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		base:            base{validator: validator, log: log},
		feedbackUsecase: feedbackUsecase,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeedbackRequest
	if !h.decode(w, r, &req) {
		return
	}

	feedback, err := h.feedbackUsecase.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Feedback created successfully", feedback)
}

func (h *FeedbackHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	feedbacks, total, err := h.feedbackUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Feedbacks retrieved successfully", feedbacks, response.NewMeta(query.Page, query.Limit, total))
}

func (h *FeedbackHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "feedback")
	if !ok {
		return
	}

	feedback, err := h.feedbackUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "feedback")
	if !ok {
		return
	}

	var req dto.UpdateFeedbackRequest
	if !h.decode(w, r, &req) {
		return
	}

	feedback, err := h.feedbackUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Feedback updated successfully", feedback)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "feedback")
	if !ok {
		return
	}

	if err := h.feedbackUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Feedback deleted successfully", nil)
}
