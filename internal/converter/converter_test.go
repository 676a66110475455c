package converter

import (
	"testing"
	"time"

	"cleaning-service-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentToResponseIncludesLoadedAssociations(t *testing.T) {
	employeeID := uuid.New()
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	appointment := &entity.Appointment{
		ID:              uuid.New(),
		CustomerID:      uuid.New(),
		EmployeeID:      &employeeID,
		ServiceID:       uuid.New(),
		AppointmentDate: start,
		EndsAt:          start.Add(time.Hour),
		Status:          entity.AppointmentStatusScheduled,
		Service:         &entity.Service{Name: "Window Cleaning", Price: decimal.NewFromInt(40), Duration: 60},
		Employee:        &entity.Employee{Account: entity.Account{ID: employeeID, FirstName: "Ana", LastName: "Diaz"}, Role: entity.StaffRoleManager},
	}

	resp := AppointmentToResponse(appointment)
	require.NotNil(t, resp)
	assert.Equal(t, "Scheduled", resp.Status)
	require.NotNil(t, resp.Service)
	assert.Equal(t, "Window Cleaning", resp.Service.Name)
	require.NotNil(t, resp.Employee)
	assert.Equal(t, "Manager", resp.Employee.Role)
	assert.Nil(t, resp.Payment)
	assert.Nil(t, resp.Feedback)
}

func TestCustomersToResponsesNeverCarriesPassword(t *testing.T) {
	customers := []entity.Customer{
		{Account: entity.Account{ID: uuid.New(), Login: "jdoe1", Password: "hash", FirstName: "J", LastName: "Doe"}},
	}

	responses := CustomersToResponses(customers)
	require.Len(t, responses, 1)
	assert.Equal(t, "jdoe1", responses[0].Login)
}

func TestNilConvertersReturnNil(t *testing.T) {
	assert.Nil(t, AppointmentToResponse(nil))
	assert.Nil(t, PaymentToResponse(nil))
	assert.Nil(t, FeedbackToResponse(nil))
	assert.Nil(t, EmployeeToSummary(nil))
	assert.Empty(t, AuditLogsToResponses(nil))
}
