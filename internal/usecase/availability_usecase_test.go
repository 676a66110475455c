package usecase

import (
	"testing"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/domain/policy"
	"cleaning-service-scheduler/internal/testfixtures"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employeeIDs(resp *dto.AvailableEmployeesResponse) []uuid.UUID {
	ids := make([]uuid.UUID, len(resp.Employees))
	for i, e := range resp.Employees {
		ids[i] = e.ID
	}
	return ids
}

func TestFindAvailableEmployeesUsesFullOverlap(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)
	busy := testfixtures.SeedEmployee(t, env.db, "Bea", "Adams")
	free := testfixtures.SeedEmployee(t, env.db, "Carl", "Baker")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")
	testfixtures.SeedAppointment(t, env.db, customer, busy, svc, at(10, 0), entity.AppointmentStatusScheduled)
	ctx := asCustomer(customer)

	tests := []struct {
		name  string
		start string
		want  []uuid.UUID
	}{
		{"starts inside the booking", stamp(at(10, 30)), []uuid.UUID{free.ID}},
		{"runs into the booking", stamp(at(9, 30)), []uuid.UUID{free.ID}},
		{"ends when the booking starts", stamp(at(9, 0)), []uuid.UUID{busy.ID, free.ID}},
		{"starts when the booking ends", "2030-03-05T11:00", []uuid.UUID{busy.ID, free.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.availability.FindAvailableEmployees(ctx, dto.AvailabilityQuery{
				ServiceID:       svc.ID,
				AppointmentDate: tt.start,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, employeeIDs(resp))
			assert.Equal(t, svc.ID, resp.ServiceID)
			assert.Equal(t, resp.StartsAt.Add(svc.DurationTime()), resp.EndsAt)
		})
	}
}

func TestFindAvailableEmployeesIsStableAndOrdered(t *testing.T) {
	env := newTestEnv(t)
	admin := testfixtures.SeedAdmin(t, env.db)
	zed := testfixtures.SeedEmployee(t, env.db, "Zoe", "Young")
	amy := testfixtures.SeedEmployee(t, env.db, "Amy", "Adams")
	ben := testfixtures.SeedEmployee(t, env.db, "Ben", "Adams")
	svc := testfixtures.SeedService(t, env.db, 120, "150.00")
	query := dto.AvailabilityQuery{ServiceID: svc.ID, AppointmentDate: stamp(at(8, 0))}

	first, err := env.availability.FindAvailableEmployees(asAdmin(admin), query)
	require.NoError(t, err)
	second, err := env.availability.FindAvailableEmployees(asAdmin(admin), query)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{amy.ID, ben.ID, zed.ID}, employeeIDs(first))
	assert.Equal(t, employeeIDs(first), employeeIDs(second))
}

func TestFindAvailableEmployeesErrors(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")

	_, err := env.availability.FindAvailableEmployees(asEmployee(employee), dto.AvailabilityQuery{
		ServiceID:       svc.ID,
		AppointmentDate: stamp(at(10, 0)),
	})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = env.availability.FindAvailableEmployees(asCustomer(customer), dto.AvailabilityQuery{
		ServiceID:       uuid.New(),
		AppointmentDate: stamp(at(10, 0)),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = env.availability.FindAvailableEmployees(asCustomer(customer), dto.AvailabilityQuery{
		ServiceID:       svc.ID,
		AppointmentDate: "05/03/2030 10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFindAvailableEmployeesMayBeEmpty(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")
	testfixtures.SeedAppointment(t, env.db, customer, employee, svc, at(10, 0), entity.AppointmentStatusInProgress)

	resp, err := env.availability.FindAvailableEmployees(asCustomer(customer), dto.AvailabilityQuery{
		ServiceID:       svc.ID,
		AppointmentDate: stamp(at(10, 15)),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Employees)
	assert.Empty(t, resp.Employees)
}
