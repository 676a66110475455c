package usecase

import (
	"testing"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/policy"
	"cleaning-service-scheduler/internal/testfixtures"
	"cleaning-service-scheduler/pkg/optional"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestScheduleLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := testfixtures.SeedAdmin(t, env.db)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	colleague := testfixtures.SeedEmployee(t, env.db, "", "")

	_, err := env.schedules.Create(asEmployee(employee), &dto.CreateScheduleRequest{
		EmployeeID: employee.ID, DayOfWeek: intPtr(1), StartTime: "08:00", EndTime: "16:00",
	})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = env.schedules.Create(asAdmin(admin), &dto.CreateScheduleRequest{
		EmployeeID: uuid.New(), DayOfWeek: intPtr(1), StartTime: "08:00", EndTime: "16:00",
	})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = env.schedules.Create(asAdmin(admin), &dto.CreateScheduleRequest{
		EmployeeID: employee.ID, DayOfWeek: intPtr(1), StartTime: "16:00", EndTime: "08:00",
	})
	assert.ErrorIs(t, err, ErrInvalidScheduleWin)

	created, err := env.schedules.Create(asAdmin(admin), &dto.CreateScheduleRequest{
		EmployeeID: employee.ID, DayOfWeek: intPtr(0), StartTime: "08:00", EndTime: "16:00",
	})
	require.NoError(t, err)
	require.NotNil(t, created.Employee)
	assert.Equal(t, employee.ID, created.Employee.ID)

	// The window is checked after the patch is applied.
	_, err = env.schedules.Update(asEmployee(employee), created.ID, &dto.UpdateScheduleRequest{
		StartTime: optional.Of("17:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidScheduleWin)

	updated, err := env.schedules.Update(asEmployee(employee), created.ID, &dto.UpdateScheduleRequest{
		StartTime: optional.Of("09:30"),
		DayOfWeek: optional.Of(6),
	})
	require.NoError(t, err)
	assert.Equal(t, "09:30", updated.StartTime)
	assert.Equal(t, 6, updated.DayOfWeek)

	_, err = env.schedules.Update(asEmployee(employee), created.ID, &dto.UpdateScheduleRequest{
		EmployeeID: optional.Of(colleague.ID),
	})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = env.schedules.Update(asEmployee(colleague), created.ID, &dto.UpdateScheduleRequest{
		EndTime: optional.Of("18:00"),
	})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	reassigned, err := env.schedules.Update(asAdmin(admin), created.ID, &dto.UpdateScheduleRequest{
		EmployeeID: optional.Of(colleague.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, colleague.ID, reassigned.EmployeeID)

	visible, total, err := env.schedules.GetAll(asCustomer(customer), dto.ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, visible)

	_, err = env.schedules.GetByID(asCustomer(customer), created.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	own, total, err := env.schedules.GetAll(asEmployee(colleague), dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, created.ID, own[0].ID)

	err = env.schedules.Delete(asEmployee(colleague), created.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)
	require.NoError(t, env.schedules.Delete(asAdmin(admin), created.ID))

	_, err = env.schedules.GetByID(asAdmin(admin), created.ID)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
