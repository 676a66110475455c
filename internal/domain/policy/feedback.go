package policy

import "cleaning-service-scheduler/internal/domain/entity"

// AuthorizeFeedbackCreate: admins, or the customer who owns the appointment.
func AuthorizeFeedbackCreate(actor entity.Actor, a *entity.Appointment) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsCustomer() && a.CustomerID == actor.ID {
		return nil
	}
	return ErrForbidden
}

func CanViewFeedback(actor entity.Actor, f *entity.Feedback) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleCustomer:
		return f.CustomerID == actor.ID
	case entity.RoleEmployee:
		return f.EmployeeID != nil && *f.EmployeeID == actor.ID
	}
	return false
}

func AuthorizeFeedbackRead(actor entity.Actor, f *entity.Feedback) error {
	if CanViewFeedback(actor, f) {
		return nil
	}
	return ErrForbidden
}

func FeedbackScope(actor entity.Actor) entity.Scope {
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

// AuthorizeFeedbackModify covers both edit and delete.
func AuthorizeFeedbackModify(actor entity.Actor, f *entity.Feedback) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsCustomer() && f.CustomerID == actor.ID {
		return nil
	}
	return ErrForbidden
}
