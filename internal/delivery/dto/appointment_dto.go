package dto

import (
	"time"

	"cleaning-service-scheduler/pkg/optional"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// CreateAppointmentRequest books a service. CustomerID is taken from the
// token for customers and required from admins. When PaymentMethod is set
// a Pending payment is created with the appointment.
type CreateAppointmentRequest struct {
	CustomerID      *uuid.UUID       `json:"customer_id"`
	EmployeeID      *uuid.UUID       `json:"employee_id"`
	ServiceID       uuid.UUID        `json:"service_id" validate:"required"`
	AppointmentDate string           `json:"appointment_date" validate:"required"`
	PaymentMethod   string           `json:"payment_method" validate:"omitempty,oneof='Credit Card' 'Debit Card' PayPal Cash"`
	Amount          *decimal.Decimal `json:"amount"`
}

type UpdateAppointmentRequest struct {
	EmployeeID      optional.Value[uuid.UUID] `json:"employee_id" patch:"nullable"`
	ServiceID       optional.Value[uuid.UUID] `json:"service_id"`
	AppointmentDate optional.Value[string]    `json:"appointment_date" patch:"required"`
	Status          optional.Value[string]    `json:"status" patch:"oneof=Scheduled 'In Progress' Completed Cancelled"`
}

type AvailabilityQuery struct {
	ServiceID       uuid.UUID `json:"service_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID         `json:"id"`
	CustomerID      uuid.UUID         `json:"customer_id"`
	EmployeeID      *uuid.UUID        `json:"employee_id"`
	ServiceID       uuid.UUID         `json:"service_id"`
	AppointmentDate time.Time         `json:"appointment_date"`
	EndsAt          time.Time         `json:"ends_at"`
	Status          string            `json:"status"`
	Service         *ServiceSummary   `json:"service,omitempty"`
	Employee        *EmployeeSummary  `json:"employee,omitempty"`
	Payment         *PaymentResponse  `json:"payment,omitempty"`
	Feedback        *FeedbackResponse `json:"feedback,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type AvailableEmployeesResponse struct {
	ServiceID uuid.UUID         `json:"service_id"`
	StartsAt  time.Time         `json:"starts_at"`
	EndsAt    time.Time         `json:"ends_at"`
	Employees []EmployeeSummary `json:"employees"`
}
