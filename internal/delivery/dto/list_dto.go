package dto

import "github.com/google/uuid"

// ListQuery is the paging and filter query string shared by list endpoints.
type ListQuery struct {
	Page       int        `json:"page" validate:"gte=0"`
	Limit      int        `json:"limit" validate:"gte=0,lte=100"`
	Status     string     `json:"status"`
	ServiceID  *uuid.UUID `json:"service_id"`
	EmployeeID *uuid.UUID `json:"employee_id"`
	CustomerID *uuid.UUID `json:"customer_id"`
}

type AuditLogQuery struct {
	Page    int        `json:"page" validate:"gte=0"`
	Limit   int        `json:"limit" validate:"gte=0,lte=100"`
	Action  string     `json:"action"`
	ActorID *uuid.UUID `json:"actor_id"`
}
