package handler

import (
	"net/http"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	base
	adminUsecase usecase.AdminUsecase
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		base:         base{validator: validator, log: log},
		adminUsecase: adminUsecase,
	}
}

func (h *AdminHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	admins, total, err := h.adminUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Admins retrieved successfully", admins, response.NewMeta(query.Page, query.Limit, total))
}

func (h *AdminHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "admin")
	if !ok {
		return
	}

	admin, err := h.adminUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Admin retrieved successfully", admin)
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "admin")
	if !ok {
		return
	}

	var req dto.UpdateAdminRequest
	if !h.decode(w, r, &req) {
		return
	}

	admin, err := h.adminUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Admin updated successfully", admin)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "admin")
	if !ok {
		return
	}

	if err := h.adminUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Admin deleted successfully", nil)
}
