package dto

import (
	"time"

	"cleaning-service-scheduler/pkg/optional"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePaymentRequest struct {
	AppointmentID uuid.UUID        `json:"appointment_id" validate:"required"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod string           `json:"payment_method" validate:"required,oneof='Credit Card' 'Debit Card' PayPal Cash"`
}

type UpdatePaymentRequest struct {
	Amount        optional.Value[decimal.Decimal] `json:"amount"`
	PaymentMethod optional.Value[string]          `json:"payment_method" patch:"oneof='Credit Card' 'Debit Card' PayPal Cash"`
	Status        optional.Value[string]          `json:"status" patch:"oneof=Pending Completed Failed"`
}

// Response DTOs

type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	AppointmentID uuid.UUID       `json:"appointment_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
