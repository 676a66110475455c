package policy

import (
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/pkg/apperror"
)

var ErrCustomerPaymentChange = apperror.Forbidden("customers may only mark a payment as Completed")

// PaymentChange describes which payment fields an update touches.
type PaymentChange struct {
	Amount bool
	Method bool
	Status *entity.PaymentStatus
}

// AuthorizePaymentCreate: admins, or the customer who owns the appointment.
func AuthorizePaymentCreate(actor entity.Actor, a *entity.Appointment) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsCustomer() && a.CustomerID == actor.ID {
		return nil
	}
	return ErrForbidden
}

// AuthorizePaymentRead follows the visibility of the owning appointment.
func AuthorizePaymentRead(actor entity.Actor, a *entity.Appointment) error {
	return AuthorizeAppointmentRead(actor, a)
}

func AuthorizePaymentUpdate(actor entity.Actor, a *entity.Appointment, change PaymentChange) error {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleCustomer:
		if a.CustomerID != actor.ID {
			return ErrForbidden
		}
		if change.Amount || change.Method {
			return ErrCustomerPaymentChange
		}
		if change.Status != nil && *change.Status != entity.PaymentStatusCompleted {
			return ErrCustomerPaymentChange
		}
		return nil
	}
	return ErrForbidden
}

func AuthorizePaymentDelete(actor entity.Actor) error {
	return AdminOnly(actor)
}
