package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/apperror"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointments struct {
	usecase.AppointmentUsecase

	err        error
	created    *dto.CreateAppointmentRequest
	listQuery  dto.ListQuery
	listResult []dto.AppointmentResponse
}

func (f *fakeAppointments) Create(_ context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AppointmentResponse{ID: uuid.New(), ServiceID: req.ServiceID, Status: string(entity.AppointmentStatusScheduled)}, nil
}

func (f *fakeAppointments) GetByID(_ context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AppointmentResponse{ID: id}, nil
}

func (f *fakeAppointments) GetAll(_ context.Context, query dto.ListQuery) ([]dto.AppointmentResponse, int64, error) {
	f.listQuery = query
	return f.listResult, int64(len(f.listResult)), f.err
}

type fakeAvailability struct {
	query dto.AvailabilityQuery
}

func (f *fakeAvailability) FindAvailableEmployees(_ context.Context, query dto.AvailabilityQuery) (*dto.AvailableEmployeesResponse, error) {
	f.query = query
	return &dto.AvailableEmployeesResponse{ServiceID: query.ServiceID, Employees: []dto.EmployeeSummary{}}, nil
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   map[string]string `json:"error"`
	Meta    *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func newAppointmentHandler(appointments *fakeAppointments) (*AppointmentHandler, *fakeAvailability, *test.Hook) {
	log, hook := test.NewNullLogger()
	availability := &fakeAvailability{}
	return NewAppointmentHandler(appointments, availability, validator.NewValidator(), log), availability, hook
}

func serve(h http.HandlerFunc, req *http.Request, vars map[string]string) (*httptest.ResponseRecorder, envelope) {
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	h(rec, req)

	var body envelope
	json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid input", usecase.ErrDateInPast, http.StatusBadRequest, "appointment_date must be in the future"},
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound, "appointment not found"},
		{"forbidden", apperror.Forbidden("forbidden"), http.StatusForbidden, "forbidden"},
		{"invalid state", usecase.ErrEmployeeBusy, http.StatusConflict, "employee is not available"},
		{"duplicate", usecase.ErrPaymentExists, http.StatusConflict, "payment already exists for this appointment"},
		{"field errors", validator.FieldErrors{"status": "status is invalid"}, http.StatusBadRequest, "Validation failed"},
		{"server fault", errors.New("connection reset by peer"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, hook := newAppointmentHandler(&fakeAppointments{err: tt.err})
			id := uuid.New()

			rec, body := serve(h.GetByID, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+id.String(), nil), map[string]string{"id": id.String()})

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)

			if tt.status == http.StatusInternalServerError {
				require.NotNil(t, hook.LastEntry())
				assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
				assert.NotContains(t, rec.Body.String(), "connection reset")
			} else {
				assert.Nil(t, hook.LastEntry())
			}
		})
	}
}

func TestGetByIDRejectsMalformedID(t *testing.T) {
	h, _, _ := newAppointmentHandler(&fakeAppointments{})

	rec, body := serve(h.GetByID, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/nope", nil), map[string]string{"id": "nope"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid appointment ID", body.Message)
}

func TestCreateAppointmentValidatesBody(t *testing.T) {
	appointments := &fakeAppointments{}
	h, _, _ := newAppointmentHandler(appointments)

	rec, body := serve(h.Create, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"payment_method":"Barter"}`)), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body.Error, "service_id")
	assert.Contains(t, body.Error, "appointment_date")
	assert.Contains(t, body.Error, "payment_method")
	assert.Nil(t, appointments.created, "usecase must not run on invalid input")

	rec, _ = serve(h.Create, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{`)), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	serviceID := uuid.New()
	payload := `{"service_id":"` + serviceID.String() + `","appointment_date":"2030-03-05T10:00","payment_method":"Cash"}`
	rec, body = serve(h.Create, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(payload)), nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	require.NotNil(t, appointments.created)
	assert.Equal(t, serviceID, appointments.created.ServiceID)
	assert.Equal(t, "Cash", appointments.created.PaymentMethod)
}

func TestListQueryParsing(t *testing.T) {
	appointments := &fakeAppointments{listResult: make([]dto.AppointmentResponse, 3)}
	h, _, _ := newAppointmentHandler(appointments)
	employeeID := uuid.New()

	rec, body := serve(h.GetAll, httptest.NewRequest(http.MethodGet, "/api/v1/appointments?page=2&limit=500&status=Scheduled&employee_id="+employeeID.String(), nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, appointments.listQuery.Page)
	assert.Equal(t, maxLimit, appointments.listQuery.Limit)
	assert.Equal(t, "Scheduled", appointments.listQuery.Status)
	require.NotNil(t, appointments.listQuery.EmployeeID)
	assert.Equal(t, employeeID, *appointments.listQuery.EmployeeID)
	assert.Nil(t, appointments.listQuery.ServiceID)
	require.NotNil(t, body.Meta)
	assert.Equal(t, int64(3), body.Meta.Total)

	rec, _ = serve(h.GetAll, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultPage, appointments.listQuery.Page)
	assert.Equal(t, defaultLimit, appointments.listQuery.Limit)

	rec, body = serve(h.GetAll, httptest.NewRequest(http.MethodGet, "/api/v1/appointments?service_id=abc", nil), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "service_id must be a valid UUID", body.Message)
}

func TestAvailableEmployeesQuery(t *testing.T) {
	h, availability, _ := newAppointmentHandler(&fakeAppointments{})
	serviceID := uuid.New()

	rec, _ := serve(h.AvailableEmployees, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/available-employees?service_id="+serviceID.String()+"&appointment_date=2030-03-05T10:00", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, serviceID, availability.query.ServiceID)
	assert.Equal(t, "2030-03-05T10:00", availability.query.AppointmentDate)

	rec, body := serve(h.AvailableEmployees, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/available-employees?service_id="+serviceID.String(), nil), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body.Error, "appointment_date")

	rec, _ = serve(h.AvailableEmployees, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/available-employees?service_id=xyz&appointment_date=2030-03-05T10:00", nil), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeAuth struct {
	usecase.AuthUsecase
	role entity.Role
}

func (f *fakeAuth) Login(_ context.Context, role entity.Role, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	f.role = role
	return &dto.TokenResponse{TokenType: "Bearer", Role: string(role)}, nil
}

func TestLoginRoleFromPath(t *testing.T) {
	auth := &fakeAuth{}
	log, _ := test.NewNullLogger()
	h := NewAuthHandler(auth, validator.NewValidator(), log)
	body := `{"login":"cleaner01","password":"secret123"}`

	rec, _ := serve(h.Login, httptest.NewRequest(http.MethodPost, "/api/v1/auth/employees/login", strings.NewReader(body)), map[string]string{"role": "employees"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.RoleEmployee, auth.role)

	rec, _ = serve(h.Login, httptest.NewRequest(http.MethodPost, "/api/v1/auth/robots/login", strings.NewReader(body)), map[string]string{"role": "robots"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
