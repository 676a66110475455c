package usecase

import (
	"context"
	"time"

	"cleaning-service-scheduler/internal/converter"
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/domain/policy"
	"cleaning-service-scheduler/internal/domain/repository"
	"cleaning-service-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.AppointmentResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	customerRepo    repository.CustomerRepository
	employeeRepo    repository.EmployeeRepository
	serviceRepo     repository.ServiceRepository
	paymentRepo     repository.PaymentRepository
	feedbackRepo    repository.FeedbackRepository
	auditService    service.AuditService
	locker          service.BookingLocker
	now             Clock
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	serviceRepo repository.ServiceRepository,
	paymentRepo repository.PaymentRepository,
	feedbackRepo repository.FeedbackRepository,
	auditService service.AuditService,
	locker service.BookingLocker,
	now Clock,
) AppointmentUsecase {
	if now == nil {
		now = time.Now
	}
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		employeeRepo:    employeeRepo,
		serviceRepo:     serviceRepo,
		paymentRepo:     paymentRepo,
		feedbackRepo:    feedbackRepo,
		auditService:    auditService,
		locker:          locker,
		now:             now,
	}
}

// withBookingLock runs fn under the employee's booking lock, or directly
// when no employee is involved.
func (u *appointmentUsecase) withBookingLock(ctx context.Context, employeeID *uuid.UUID, fn func(ctx context.Context) error) error {
	if employeeID == nil {
		return fn(ctx)
	}
	return u.locker.WithEmployeeLock(ctx, *employeeID, fn)
}

func (u *appointmentUsecase) futureInstant(value string) (time.Time, error) {
	start, err := ParseInstant(value)
	if err != nil {
		return time.Time{}, err
	}
	if !start.After(u.now()) {
		return time.Time{}, ErrDateInPast
	}
	return start, nil
}

// checkEmployeeFree locks the employee row and rejects a window that
// overlaps one of their live appointments.
func (u *appointmentUsecase) checkEmployeeFree(tx *gorm.DB, employeeID uuid.UUID, window entity.Window, excludeID *uuid.UUID) (*entity.Employee, error) {
	employee, err := u.employeeRepo.FindByIDForUpdate(tx, employeeID)
	if err != nil {
		u.log.Warnf("Failed to lock employee: %+v", err)
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	busy, err := u.appointmentRepo.HasConflict(tx, employeeID, window, excludeID)
	if err != nil {
		u.log.Warnf("Failed to check employee availability: %+v", err)
		return nil, err
	}
	if busy {
		return nil, ErrEmployeeBusy
	}
	return employee, nil
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAppointmentCreate(actor); err != nil {
		return nil, err
	}

	var customerID uuid.UUID
	switch {
	case actor.IsCustomer():
		if req.CustomerID != nil && *req.CustomerID != actor.ID {
			return nil, policy.ErrForbidden
		}
		customerID = actor.ID
	case req.CustomerID == nil:
		return nil, ErrCustomerRequired
	default:
		customerID = *req.CustomerID
	}

	start, err := u.futureInstant(req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	var method entity.PaymentMethod
	if req.PaymentMethod != "" {
		method = entity.PaymentMethod(req.PaymentMethod)
		if !method.Valid() {
			return nil, ErrInvalidPayment
		}
		if req.Amount != nil && req.Amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
	}

	appointment := &entity.Appointment{
		CustomerID: customerID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Status:     entity.AppointmentStatusScheduled,
	}

	err = u.withBookingLock(ctx, req.EmployeeID, func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		customer, err := u.customerRepo.FindByID(tx, customerID)
		if err != nil {
			u.log.Warnf("Failed to find customer by ID: %+v", err)
			return err
		}
		if customer == nil {
			return ErrCustomerNotFound
		}

		svc, err := u.serviceRepo.FindByID(tx, req.ServiceID)
		if err != nil {
			u.log.Warnf("Failed to find service by ID: %+v", err)
			return err
		}
		if svc == nil {
			return ErrServiceNotFound
		}
		appointment.Reschedule(start, svc.DurationTime())

		if req.EmployeeID != nil {
			if _, err := u.checkEmployeeFree(tx, *req.EmployeeID, appointment.Window(), nil); err != nil {
				return err
			}
		}

		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		if method != "" {
			amount := svc.Price
			if req.Amount != nil {
				amount = *req.Amount
			}
			payment := &entity.Payment{
				AppointmentID: appointment.ID,
				Amount:        amount,
				PaymentMethod: method,
				Status:        entity.PaymentStatusPending,
			}
			if err := u.paymentRepo.Create(tx, payment); err != nil {
				u.log.Warnf("Failed to create payment: %+v", err)
				return err
			}
			appointment.Payment = payment
		}

		if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
			return err
		}

		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, bookingError(err)
	}

	return u.GetByID(ctx, appointment.ID)
}

func (u *appointmentUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.AppointmentResponse, int64, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, 0, err
	}

	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), policy.AppointmentScope(actor), converter.ListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, 0, err
	}

	return converter.AppointmentsToResponses(appointments), total, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if err := policy.AuthorizeAppointmentRead(actor, appointment); err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// appointmentPatch is an update request resolved against the stored
// appointment.
type appointmentPatch struct {
	change     policy.AppointmentChange
	start      time.Time
	serviceID  uuid.UUID
	employeeID *uuid.UUID
}

func (u *appointmentUsecase) resolvePatch(a *entity.Appointment, req *dto.UpdateAppointmentRequest) (*appointmentPatch, error) {
	p := &appointmentPatch{
		start:      a.AppointmentDate,
		serviceID:  a.ServiceID,
		employeeID: a.EmployeeID,
	}

	if req.Status.HasValue() {
		status, ok := entity.ParseAppointmentStatus(req.Status.Value)
		if !ok {
			return nil, ErrInvalidStatus
		}
		p.change.Status = &status
	}

	if req.AppointmentDate.HasValue() {
		start, err := ParseInstant(req.AppointmentDate.Value)
		if err != nil {
			return nil, err
		}
		if !start.Equal(a.AppointmentDate) {
			if !start.After(u.now()) {
				return nil, ErrDateInPast
			}
			p.start = start
			p.change.Date = true
		}
	}

	if req.ServiceID.HasValue() && req.ServiceID.Value != a.ServiceID {
		p.serviceID = req.ServiceID.Value
		p.change.Service = true
	}

	if req.EmployeeID.IsSet() {
		next := req.EmployeeID.Ptr()
		if !sameEmployee(next, a.EmployeeID) {
			p.employeeID = next
			p.change.Employee = true
		}
	}

	return p, nil
}

func sameEmployee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Update applies a partial change under the role and lifecycle rules. A
// move, a service change or a reassignment re-runs the conflict check
// under the booking lock; a status change to Completed or Cancelled
// carries the linked payment along in the same transaction.
func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	current, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if current == nil {
		return nil, ErrAppointmentNotFound
	}

	patch, err := u.resolvePatch(current, req)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAppointmentUpdate(actor, current, patch.change); err != nil {
		return nil, err
	}

	rebook := patch.change.Date || patch.change.Service || patch.change.Employee
	var lockEmployee *uuid.UUID
	if rebook {
		lockEmployee = patch.employeeID
	}

	err = u.withBookingLock(ctx, lockEmployee, func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		appointment, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment by ID: %+v", err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		// The row may have moved on since the unlocked read.
		if err := policy.AuthorizeAppointmentUpdate(actor, appointment, patch.change); err != nil {
			return err
		}
		oldValue := converter.AppointmentToResponse(appointment)

		if rebook {
			if err := u.rebook(tx, appointment, patch); err != nil {
				return err
			}
		}

		var syncedPayment *entity.Payment
		var paymentBefore *dto.PaymentResponse
		if patch.change.Status != nil && *patch.change.Status != appointment.Status {
			appointment.Status = *patch.change.Status
			if target, ok := appointment.Status.PaymentSync(); ok && appointment.Payment != nil && appointment.Payment.Status != target {
				paymentBefore = converter.PaymentToResponse(appointment.Payment)
				appointment.Payment.Status = target
				if err := u.paymentRepo.Update(tx, appointment.Payment); err != nil {
					u.log.Warnf("Failed to sync payment status: %+v", err)
					return err
				}
				syncedPayment = appointment.Payment
			}
		}

		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			u.log.Warnf("Failed to update appointment: %+v", err)
			return err
		}

		if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentUpdate, "appointment", id.String(), oldValue, converter.AppointmentToResponse(appointment)); err != nil {
			return err
		}
		if syncedPayment != nil {
			if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionPaymentSync, "payment", syncedPayment.ID.String(), paymentBefore, converter.PaymentToResponse(syncedPayment)); err != nil {
				return err
			}
		}

		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, bookingError(err)
	}

	return u.GetByID(ctx, id)
}

// rebook moves the appointment to its new service, start and employee and
// checks the employee is free for the resulting window.
func (u *appointmentUsecase) rebook(tx *gorm.DB, a *entity.Appointment, p *appointmentPatch) error {
	svc := a.Service
	if p.change.Service || svc == nil {
		found, err := u.serviceRepo.FindByID(tx, p.serviceID)
		if err != nil {
			u.log.Warnf("Failed to find service by ID: %+v", err)
			return err
		}
		if found == nil {
			return ErrServiceNotFound
		}
		svc = found
	}
	a.ServiceID = svc.ID
	a.Service = svc
	a.Reschedule(p.start, svc.DurationTime())

	a.EmployeeID = p.employeeID
	a.Employee = nil
	if a.EmployeeID == nil || a.Status == entity.AppointmentStatusCancelled {
		return nil
	}

	employee, err := u.checkEmployeeFree(tx, *a.EmployeeID, a.Window(), &a.ID)
	if err != nil {
		return err
	}
	a.Employee = employee
	return nil
}

// Delete removes the appointment with its payment and feedback.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if err := policy.AuthorizeAppointmentDelete(actor, appointment); err != nil {
		return err
	}

	ids := []uuid.UUID{id}
	if _, err := u.paymentRepo.DeleteByAppointmentIDs(tx, ids); err != nil {
		u.log.Warnf("Failed to delete payment of appointment: %+v", err)
		return err
	}
	if _, err := u.feedbackRepo.DeleteByAppointmentIDs(tx, ids); err != nil {
		u.log.Warnf("Failed to delete feedback of appointment: %+v", err)
		return err
	}
	if _, err := u.appointmentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionAppointmentDelete, "appointment", id.String(), converter.AppointmentToResponse(appointment)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
