package entity

import (
	"context"

	"github.com/google/uuid"
)

// Role is the system-level role of an authenticated actor.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleEmployee:
		return true
	}
	return false
}

// Actor is the authenticated caller: exactly one role plus the id of the
// Admin, Customer or Employee record it stands for.
type Actor struct {
	Role Role
	ID   uuid.UUID
}

func AdminActor(id uuid.UUID) Actor    { return Actor{Role: RoleAdmin, ID: id} }
func CustomerActor(id uuid.UUID) Actor { return Actor{Role: RoleCustomer, ID: id} }
func EmployeeActor(id uuid.UUID) Actor { return Actor{Role: RoleEmployee, ID: id} }

func (a Actor) IsAdmin() bool    { return a.Role == RoleAdmin }
func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }
func (a Actor) IsEmployee() bool { return a.Role == RoleEmployee }

// Is reports whether the actor is the given record of the given role.
func (a Actor) Is(role Role, id uuid.UUID) bool {
	return a.Role == role && a.ID == id
}

// IDPtr is handy for nullable audit columns.
func (a Actor) IDPtr() *uuid.UUID {
	if a.ID == uuid.Nil {
		return nil
	}
	id := a.ID
	return &id
}

type actorContextKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	if !ok || !actor.Role.Valid() {
		return Actor{}, false
	}
	return actor, true
}
