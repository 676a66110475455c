package entity

import "github.com/google/uuid"

// Scope narrows a list query to the rows an actor may see. The zero value
// means no restriction.
type Scope struct {
	CustomerID *uuid.UUID
	EmployeeID *uuid.UUID
	Nothing    bool
}

func ScopeAll() Scope { return Scope{} }

func ScopeNothing() Scope { return Scope{Nothing: true} }

func ScopeCustomer(id uuid.UUID) Scope { return Scope{CustomerID: &id} }

func ScopeEmployee(id uuid.UUID) Scope { return Scope{EmployeeID: &id} }

// ListFilter is paging plus optional equality filters shared by list endpoints.
type ListFilter struct {
	Page       int
	Limit      int
	Status     string
	ServiceID  *uuid.UUID
	EmployeeID *uuid.UUID
	CustomerID *uuid.UUID
}

func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// AuditLogFilter pages audit entries, optionally narrowed to one action or actor.
type AuditLogFilter struct {
	Page    int
	Limit   int
	Action  string
	ActorID *uuid.UUID
}
