package usecase

import (
	"testing"
	"time"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/domain/policy"
	"cleaning-service-scheduler/internal/testfixtures"
	"cleaning-service-scheduler/pkg/apperror"
	"cleaning-service-scheduler/pkg/optional"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAppointmentRejectsOverlappingBooking(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")
	ctx := asCustomer(customer)

	first, err := env.appointments.Create(ctx, &dto.CreateAppointmentRequest{
		EmployeeID:      &employee.ID,
		ServiceID:       svc.ID,
		AppointmentDate: stamp(at(10, 0)),
	})
	require.NoError(t, err)
	assertInstant(t, at(10, 0), first.AppointmentDate)
	assertInstant(t, at(11, 0), first.EndsAt)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), first.Status)

	_, err = env.appointments.Create(ctx, &dto.CreateAppointmentRequest{
		EmployeeID:      &employee.ID,
		ServiceID:       svc.ID,
		AppointmentDate: stamp(at(10, 30)),
	})
	assert.ErrorIs(t, err, ErrEmployeeBusy)

	// Starting earlier and running into the booking is also an overlap.
	_, err = env.appointments.Create(ctx, &dto.CreateAppointmentRequest{
		EmployeeID:      &employee.ID,
		ServiceID:       svc.ID,
		AppointmentDate: stamp(at(9, 30)),
	})
	assert.ErrorIs(t, err, ErrEmployeeBusy)

	back2back, err := env.appointments.Create(ctx, &dto.CreateAppointmentRequest{
		EmployeeID:      &employee.ID,
		ServiceID:       svc.ID,
		AppointmentDate: "2030-03-05T11:00",
	})
	require.NoError(t, err)
	assertInstant(t, at(11, 0), back2back.AppointmentDate)
}

func TestCreateAppointmentValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := testfixtures.SeedAdmin(t, env.db)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")
	other := uuid.New()

	tests := []struct {
		name  string
		actor entity.Actor
		req   dto.CreateAppointmentRequest
		want  error
	}{
		{
			name:  "date in the past",
			actor: entity.CustomerActor(customer.ID),
			req:   dto.CreateAppointmentRequest{ServiceID: svc.ID, AppointmentDate: stamp(testfixtures.ReferenceTime().Add(-time.Hour))},
			want:  ErrDateInPast,
		},
		{
			name:  "unparseable date",
			actor: entity.CustomerActor(customer.ID),
			req:   dto.CreateAppointmentRequest{ServiceID: svc.ID, AppointmentDate: "tomorrow at ten"},
			want:  ErrInvalidDate,
		},
		{
			name:  "unknown service",
			actor: entity.CustomerActor(customer.ID),
			req:   dto.CreateAppointmentRequest{ServiceID: other, AppointmentDate: stamp(at(10, 0))},
			want:  ErrServiceNotFound,
		},
		{
			name:  "unknown employee",
			actor: entity.CustomerActor(customer.ID),
			req:   dto.CreateAppointmentRequest{ServiceID: svc.ID, EmployeeID: &other, AppointmentDate: stamp(at(10, 0))},
			want:  ErrEmployeeNotFound,
		},
		{
			name:  "admin without customer",
			actor: entity.AdminActor(admin.ID),
			req:   dto.CreateAppointmentRequest{ServiceID: svc.ID, AppointmentDate: stamp(at(10, 0))},
			want:  ErrCustomerRequired,
		},
		{
			name:  "customer booking for someone else",
			actor: entity.CustomerActor(customer.ID),
			req:   dto.CreateAppointmentRequest{CustomerID: &other, ServiceID: svc.ID, AppointmentDate: stamp(at(10, 0))},
			want:  policy.ErrForbidden,
		},
		{
			name:  "employee cannot book",
			actor: entity.EmployeeActor(employee.ID),
			req:   dto.CreateAppointmentRequest{ServiceID: svc.ID, AppointmentDate: stamp(at(10, 0))},
			want:  policy.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.appointments.Create(as(tt.actor), &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Zero(t, countRows(t, env.db, &entity.Appointment{}, "1 = 1"))
}

func TestCreateAppointmentWithPayment(t *testing.T) {
	env := newTestEnv(t)
	admin := testfixtures.SeedAdmin(t, env.db)
	customer := testfixtures.SeedCustomer(t, env.db)
	svc := testfixtures.SeedService(t, env.db, 90, "120.50")

	resp, err := env.appointments.Create(asAdmin(admin), &dto.CreateAppointmentRequest{
		CustomerID:      &customer.ID,
		ServiceID:       svc.ID,
		AppointmentDate: stamp(at(14, 0)),
		PaymentMethod:   string(entity.PaymentMethodPayPal),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Payment)
	assert.Nil(t, resp.EmployeeID)
	assert.Equal(t, customer.ID, resp.CustomerID)
	assertInstant(t, at(15, 30), resp.EndsAt)
	assert.True(t, decimal.RequireFromString("120.50").Equal(resp.Payment.Amount))
	assert.Equal(t, string(entity.PaymentStatusPending), resp.Payment.Status)

	assert.Equal(t, int64(1), countRows(t, env.db, &entity.AuditLog{}, "action = ?", entity.AuditActionAppointmentCreate))
}

func TestAppointmentLifecycleSyncsPaymentAndAllowsFeedback(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")

	created, err := env.appointments.Create(asCustomer(customer), &dto.CreateAppointmentRequest{
		EmployeeID:      &employee.ID,
		ServiceID:       svc.ID,
		AppointmentDate: stamp(at(9, 0)),
		PaymentMethod:   string(entity.PaymentMethodCash),
	})
	require.NoError(t, err)

	_, err = env.feedbacks.Create(asCustomer(customer), &dto.CreateFeedbackRequest{AppointmentID: created.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrNotCompleted)

	_, err = env.appointments.Update(asEmployee(employee), created.ID, &dto.UpdateAppointmentRequest{
		Status: optional.Of(string(entity.AppointmentStatusCompleted)),
	})
	assert.ErrorIs(t, err, policy.ErrInvalidTransition, "Scheduled cannot jump to Completed")

	for _, status := range []entity.AppointmentStatus{entity.AppointmentStatusInProgress, entity.AppointmentStatusCompleted} {
		resp, err := env.appointments.Update(asEmployee(employee), created.ID, &dto.UpdateAppointmentRequest{
			Status: optional.Of(string(status)),
		})
		require.NoError(t, err)
		assert.Equal(t, string(status), resp.Status)
	}

	payment, err := env.payments.GetByID(asCustomer(customer), created.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentStatusCompleted), payment.Status)
	assert.Equal(t, int64(1), countRows(t, env.db, &entity.AuditLog{}, "action = ?", entity.AuditActionPaymentSync))

	feedback, err := env.feedbacks.Create(asCustomer(customer), &dto.CreateFeedbackRequest{
		AppointmentID: created.ID,
		Rating:        4,
		Comment:       "Spotless kitchen",
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, feedback.CustomerID)
	require.NotNil(t, feedback.EmployeeID)
	assert.Equal(t, employee.ID, *feedback.EmployeeID)

	_, err = env.feedbacks.Create(asCustomer(customer), &dto.CreateFeedbackRequest{AppointmentID: created.ID, Rating: 1})
	requireKind(t, err, apperror.KindDuplicateResource)

	_, err = env.appointments.Update(asEmployee(employee), created.ID, &dto.UpdateAppointmentRequest{
		Status: optional.Of(string(entity.AppointmentStatusCancelled)),
	})
	assert.ErrorIs(t, err, policy.ErrTerminalStatus)
}

func TestCancellingFailsLinkedPayment(t *testing.T) {
	env := newTestEnv(t)
	admin := testfixtures.SeedAdmin(t, env.db)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")
	appointment := testfixtures.SeedAppointment(t, env.db, customer, employee, svc, at(10, 0), entity.AppointmentStatusInProgress)
	payment := testfixtures.SeedPayment(t, env.db, appointment.ID, "80.00", entity.PaymentStatusPending)

	resp, err := env.appointments.Update(asAdmin(admin), appointment.ID, &dto.UpdateAppointmentRequest{
		Status: optional.Of(string(entity.AppointmentStatusCancelled)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), resp.Status)

	var stored entity.Payment
	require.NoError(t, env.db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, entity.PaymentStatusFailed, stored.Status)

	// The cancelled window no longer blocks the employee.
	found, err := env.availability.FindAvailableEmployees(asCustomer(customer), dto.AvailabilityQuery{
		ServiceID:       svc.ID,
		AppointmentDate: stamp(at(10, 0)),
	})
	require.NoError(t, err)
	require.Len(t, found.Employees, 1)
	assert.Equal(t, employee.ID, found.Employees[0].ID)
}

func TestSettingSameStatusIsNoop(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")
	appointment := testfixtures.SeedAppointment(t, env.db, customer, employee, svc, at(10, 0), entity.AppointmentStatusCompleted)

	resp, err := env.appointments.Update(asEmployee(employee), appointment.ID, &dto.UpdateAppointmentRequest{
		Status: optional.Of(string(entity.AppointmentStatusCompleted)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), resp.Status)
}

func TestAppointmentUpdateRoleMatrix(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)
	stranger := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	otherEmployee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")
	scheduled := testfixtures.SeedAppointment(t, env.db, customer, employee, svc, at(10, 0), entity.AppointmentStatusScheduled)
	inProgress := testfixtures.SeedAppointment(t, env.db, customer, employee, svc, at(13, 0), entity.AppointmentStatusInProgress)

	t.Run("employee cannot move the date", func(t *testing.T) {
		_, err := env.appointments.Update(asEmployee(employee), scheduled.ID, &dto.UpdateAppointmentRequest{
			AppointmentDate: optional.Of(stamp(at(16, 0))),
		})
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("unassigned employee cannot advance", func(t *testing.T) {
		_, err := env.appointments.Update(asEmployee(otherEmployee), scheduled.ID, &dto.UpdateAppointmentRequest{
			Status: optional.Of(string(entity.AppointmentStatusInProgress)),
		})
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("customer cannot change status", func(t *testing.T) {
		_, err := env.appointments.Update(asCustomer(customer), scheduled.ID, &dto.UpdateAppointmentRequest{
			Status: optional.Of(string(entity.AppointmentStatusCancelled)),
		})
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("customer cannot touch another booking", func(t *testing.T) {
		_, err := env.appointments.Update(asCustomer(stranger), scheduled.ID, &dto.UpdateAppointmentRequest{
			AppointmentDate: optional.Of(stamp(at(16, 0))),
		})
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("customer cannot move a started job", func(t *testing.T) {
		_, err := env.appointments.Update(asCustomer(customer), inProgress.ID, &dto.UpdateAppointmentRequest{
			AppointmentDate: optional.Of(stamp(at(16, 0))),
		})
		requireKind(t, err, apperror.KindInvalidState)
	})

	t.Run("bad status string", func(t *testing.T) {
		_, err := env.appointments.Update(asEmployee(employee), scheduled.ID, &dto.UpdateAppointmentRequest{
			Status: optional.Of("Done"),
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("missing appointment", func(t *testing.T) {
		_, err := env.appointments.Update(asCustomer(customer), uuid.New(), &dto.UpdateAppointmentRequest{})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCustomerRescheduleRechecksConflicts(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")
	longer := testfixtures.SeedService(t, env.db, 180, "200.00")
	mine := testfixtures.SeedAppointment(t, env.db, customer, employee, svc, at(10, 0), entity.AppointmentStatusScheduled)
	testfixtures.SeedAppointment(t, env.db, testfixtures.SeedCustomer(t, env.db), employee, svc, at(12, 0), entity.AppointmentStatusScheduled)
	ctx := asCustomer(customer)

	// Moving within its own window does not conflict with itself.
	moved, err := env.appointments.Update(ctx, mine.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate: optional.Of(stamp(at(10, 30))),
	})
	require.NoError(t, err)
	assertInstant(t, at(11, 30), moved.EndsAt)

	_, err = env.appointments.Update(ctx, mine.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate: optional.Of(stamp(at(12, 30))),
	})
	assert.ErrorIs(t, err, ErrEmployeeBusy)

	// A longer service stretches the window into the noon booking.
	_, err = env.appointments.Update(ctx, mine.ID, &dto.UpdateAppointmentRequest{
		ServiceID: optional.Of(longer.ID),
	})
	assert.ErrorIs(t, err, ErrEmployeeBusy)

	// Dropping the employee clears the conflict.
	resp, err := env.appointments.Update(ctx, mine.ID, &dto.UpdateAppointmentRequest{
		ServiceID:  optional.Of(longer.ID),
		EmployeeID: optional.Null[uuid.UUID](),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.EmployeeID)
	assertInstant(t, at(13, 30), resp.EndsAt)

	_, err = env.appointments.Update(ctx, mine.ID, &dto.UpdateAppointmentRequest{
		AppointmentDate: optional.Of(stamp(testfixtures.ReferenceTime().Add(-time.Minute))),
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestDeleteAppointment(t *testing.T) {
	env := newTestEnv(t)
	admin := testfixtures.SeedAdmin(t, env.db)
	customer := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")

	completed := testfixtures.SeedAppointment(t, env.db, customer, employee, svc, at(8, 0), entity.AppointmentStatusCompleted)
	err := env.appointments.Delete(asCustomer(customer), completed.ID)
	requireKind(t, err, apperror.KindInvalidState)

	err = env.appointments.Delete(asEmployee(employee), completed.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	scheduled := testfixtures.SeedAppointment(t, env.db, customer, employee, svc, at(10, 0), entity.AppointmentStatusScheduled)
	testfixtures.SeedPayment(t, env.db, scheduled.ID, "80.00", entity.PaymentStatusPending)
	require.NoError(t, env.appointments.Delete(asCustomer(customer), scheduled.ID))
	assert.Zero(t, countRows(t, env.db, &entity.Payment{}, "appointment_id = ?", scheduled.ID))

	_, err = env.appointments.GetByID(asCustomer(customer), scheduled.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	require.NoError(t, env.appointments.Delete(asAdmin(admin), completed.ID))
}

func TestAppointmentListsAreScoped(t *testing.T) {
	env := newTestEnv(t)
	admin := testfixtures.SeedAdmin(t, env.db)
	alice := testfixtures.SeedCustomer(t, env.db)
	bob := testfixtures.SeedCustomer(t, env.db)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")
	svc := testfixtures.SeedService(t, env.db, 60, "80.00")

	assigned := testfixtures.SeedAppointment(t, env.db, alice, employee, svc, at(9, 0), entity.AppointmentStatusScheduled)
	testfixtures.SeedAppointment(t, env.db, alice, nil, svc, at(11, 0), entity.AppointmentStatusScheduled)
	bobs := testfixtures.SeedAppointment(t, env.db, bob, nil, svc, at(13, 0), entity.AppointmentStatusScheduled)

	all, total, err := env.appointments.GetAll(asAdmin(admin), dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	own, total, err := env.appointments.GetAll(asCustomer(alice), dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, a := range own {
		assert.Equal(t, alice.ID, a.CustomerID)
	}

	jobs, total, err := env.appointments.GetAll(asEmployee(employee), dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, assigned.ID, jobs[0].ID)

	_, err = env.appointments.GetByID(asCustomer(alice), bobs.ID)
	assert.ErrorIs(t, err, policy.ErrForbidden)
}
