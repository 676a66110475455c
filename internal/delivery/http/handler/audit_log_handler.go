package handler

import (
	"net/http"
	"strconv"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AuditLogHandler struct {
	base
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, log *logrus.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		base:            base{log: log},
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetByID(r.Context(), auditLogID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// GetAllAuditLogs pages through the trail, newest first, optionally
// filtered by action and actor_id.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	query := dto.AuditLogQuery{
		Page:   page,
		Limit:  limit,
		Action: r.URL.Query().Get("action"),
	}

	actorID, err := queryUUID(r, "actor_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	query.ActorID = actorID

	auditLogs, total, err := h.auditLogUsecase.GetAll(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs, response.NewMeta(page, limit, total))
}
