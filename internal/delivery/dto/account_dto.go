package dto

import (
	"time"

	"cleaning-service-scheduler/pkg/optional"

	"github.com/google/uuid"
)

// Request DTOs

type CreateEmployeeRequest struct {
	Login       string `json:"login" validate:"required,min=5,max=50"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	FirstName   string `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string `json:"last_name" validate:"required,min=2,max=50"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,phone,max=20"`
	Role        string `json:"role" validate:"omitempty,oneof=Employee Manager HR"`
}

type UpdateAdminRequest struct {
	Login     optional.Value[string] `json:"login" patch:"min=5,max=50"`
	Password  optional.Value[string] `json:"password" patch:"min=6,max=72"`
	FirstName optional.Value[string] `json:"first_name" patch:"min=2,max=50"`
	LastName  optional.Value[string] `json:"last_name" patch:"min=2,max=50"`
}

type UpdateCustomerRequest struct {
	Login       optional.Value[string] `json:"login" patch:"min=5,max=50"`
	Password    optional.Value[string] `json:"password" patch:"min=6,max=72"`
	FirstName   optional.Value[string] `json:"first_name" patch:"min=2,max=50"`
	LastName    optional.Value[string] `json:"last_name" patch:"min=2,max=50"`
	PhoneNumber optional.Value[string] `json:"phone_number" patch:"nullable,omitempty,phone,max=20"`
	Address     optional.Value[string] `json:"address" patch:"nullable,max=255"`
}

type UpdateEmployeeRequest struct {
	Login       optional.Value[string] `json:"login" patch:"min=5,max=50"`
	Password    optional.Value[string] `json:"password" patch:"min=6,max=72"`
	FirstName   optional.Value[string] `json:"first_name" patch:"min=2,max=50"`
	LastName    optional.Value[string] `json:"last_name" patch:"min=2,max=50"`
	PhoneNumber optional.Value[string] `json:"phone_number" patch:"nullable,omitempty,phone,max=20"`
	Role        optional.Value[string] `json:"role" patch:"oneof=Employee Manager HR"`
}

// Response DTOs

type AdminResponse struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Login       string    `json:"login"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EmployeeResponse struct {
	ID          uuid.UUID `json:"id"`
	Login       string    `json:"login"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EmployeeSummary is the embedded view of an assigned employee.
type EmployeeSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
}
