package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/pkg/apperror"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// base carries what every handler needs to decode, validate and answer.
type base struct {
	validator *validator.CustomValidator
	log       *logrus.Logger
}

// decode reads the JSON body into req and validates it. On failure the
// response is already written.
func (b base) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := b.validator.Validate(req); err != nil {
		response.ValidationError(w, b.validator.FormatValidationErrors(err))
		return false
	}
	return true
}

// fail maps an error kind to its status. Anything unclassified is a
// server fault: logged, and answered without detail.
func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrors validator.FieldErrors
	if errors.As(err, &fieldErrors) {
		response.ValidationError(w, fieldErrors)
		return
	}

	if response.AppError(w, err) {
		return
	}

	b.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Errorf("Unhandled error: %+v", err)
	response.InternalServerError(w, "")
}

func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.InvalidInput(name + " must be a valid UUID")
	}
	return &id, nil
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// listQuery reads paging and the optional filters shared by list endpoints.
func listQuery(r *http.Request) (dto.ListQuery, error) {
	page, limit := pageParams(r)
	query := dto.ListQuery{
		Page:   page,
		Limit:  limit,
		Status: r.URL.Query().Get("status"),
	}

	var err error
	if query.ServiceID, err = queryUUID(r, "service_id"); err != nil {
		return query, err
	}
	if query.EmployeeID, err = queryUUID(r, "employee_id"); err != nil {
		return query, err
	}
	if query.CustomerID, err = queryUUID(r, "customer_id"); err != nil {
		return query, err
	}
	return query, nil
}
