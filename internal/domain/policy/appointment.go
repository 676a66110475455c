package policy

import "cleaning-service-scheduler/internal/domain/entity"

// AppointmentChange describes which fields an update touches. Status is nil
// when the status is left alone.
type AppointmentChange struct {
	Status   *entity.AppointmentStatus
	Date     bool
	Service  bool
	Employee bool
}

func (c AppointmentChange) touchesBooking() bool {
	return c.Date || c.Service || c.Employee
}

// statusChanged ignores a status equal to the current one.
func (c AppointmentChange) statusChanged(current entity.AppointmentStatus) bool {
	return c.Status != nil && *c.Status != current
}

// CanViewAppointment: admins see everything, customers their own bookings,
// employees the jobs assigned to them.
func CanViewAppointment(actor entity.Actor, a *entity.Appointment) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleCustomer:
		return a.CustomerID == actor.ID
	case entity.RoleEmployee:
		return a.IsAssignedTo(actor.ID)
	}
	return false
}

func AuthorizeAppointmentRead(actor entity.Actor, a *entity.Appointment) error {
	if CanViewAppointment(actor, a) {
		return nil
	}
	return ErrForbidden
}

// AppointmentScope narrows appointment (and payment) lists.
func AppointmentScope(actor entity.Actor) entity.Scope {
	switch actor.Role {
	case entity.RoleAdmin:
		return entity.ScopeAll()
	case entity.RoleCustomer:
		return entity.ScopeCustomer(actor.ID)
	case entity.RoleEmployee:
		return entity.ScopeEmployee(actor.ID)
	}
	return entity.ScopeNothing()
}

func AuthorizeAppointmentCreate(actor entity.Actor) error {
	if actor.IsAdmin() || actor.IsCustomer() {
		return nil
	}
	return ErrForbidden
}

// AuthorizeAppointmentUpdate applies the role and lifecycle matrix:
//   - admins may change any field; status changes still respect terminal states
//   - customers may move or reassign their own booking while it is Scheduled,
//     and never touch the status
//   - employees may only advance the status of jobs assigned to them
func AuthorizeAppointmentUpdate(actor entity.Actor, a *entity.Appointment, change AppointmentChange) error {
	switch actor.Role {
	case entity.RoleAdmin:
		if change.statusChanged(a.Status) && a.Status.IsTerminal() {
			return ErrTerminalStatus
		}
		return nil

	case entity.RoleCustomer:
		if a.CustomerID != actor.ID {
			return ErrForbidden
		}
		if change.statusChanged(a.Status) {
			return ErrForbidden
		}
		if change.touchesBooking() && !a.IsScheduled() {
			return ErrNotScheduled
		}
		return nil

	case entity.RoleEmployee:
		if !a.IsAssignedTo(actor.ID) {
			return ErrForbidden
		}
		if change.touchesBooking() {
			return ErrForbidden
		}
		if !change.statusChanged(a.Status) {
			return nil
		}
		if a.Status.IsTerminal() {
			return ErrTerminalStatus
		}
		if !a.Status.CanAdvanceTo(*change.Status) {
			return ErrInvalidTransition
		}
		return nil
	}

	return ErrForbidden
}

// AuthorizeAppointmentDelete: deleting is the customer's way to cancel and
// only works while Scheduled. Employees never delete.
func AuthorizeAppointmentDelete(actor entity.Actor, a *entity.Appointment) error {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleCustomer:
		if a.CustomerID != actor.ID {
			return ErrForbidden
		}
		if !a.IsScheduled() {
			return ErrNotScheduled
		}
		return nil
	}
	return ErrForbidden
}
