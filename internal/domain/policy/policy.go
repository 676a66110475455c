// Package policy holds the role and ownership rules deciding which actor
// may read or change which record. Functions are pure: callers load the
// records and pass them in.
package policy

import (
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/pkg/apperror"

	"github.com/google/uuid"
)

var (
	ErrForbidden         = apperror.Forbidden("you don't have permission to access this resource")
	ErrNotScheduled      = apperror.InvalidState("appointment can only be changed while it is Scheduled")
	ErrTerminalStatus    = apperror.InvalidState("appointment is already Completed or Cancelled")
	ErrInvalidTransition = apperror.InvalidState("appointment status transition is not allowed")
)

// AdminOnly guards catalog, staff and audit operations.
func AdminOnly(actor entity.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// AuthorizeAccountRead allows admins and the account owner.
func AuthorizeAccountRead(actor entity.Actor, role entity.Role, id uuid.UUID) error {
	if actor.IsAdmin() || actor.Is(role, id) {
		return nil
	}
	return ErrForbidden
}

// AuthorizeAccountUpdate allows admins and the account owner.
func AuthorizeAccountUpdate(actor entity.Actor, role entity.Role, id uuid.UUID) error {
	return AuthorizeAccountRead(actor, role, id)
}

// AuthorizeAccountDelete lets customers close their own account. Employee
// and admin accounts are removed by admins only.
func AuthorizeAccountDelete(actor entity.Actor, role entity.Role, id uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if role == entity.RoleCustomer && actor.Is(role, id) {
		return nil
	}
	return ErrForbidden
}

// AuthorizeStaffRoleChange stops employees from promoting themselves.
func AuthorizeStaffRoleChange(actor entity.Actor) error {
	return AdminOnly(actor)
}

// AuthorizeAvailabilityQuery is open to the actors that book.
func AuthorizeAvailabilityQuery(actor entity.Actor) error {
	if actor.IsAdmin() || actor.IsCustomer() {
		return nil
	}
	return ErrForbidden
}
