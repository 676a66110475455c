package dto

import (
	"time"

	"cleaning-service-scheduler/pkg/optional"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateServiceRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=100"`
	Description string           `json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Duration    int              `json:"duration" validate:"required,gte=15"`
	Photo       string           `json:"photo" validate:"omitempty,max=255"`
}

type UpdateServiceRequest struct {
	Name        optional.Value[string]          `json:"name" patch:"min=2,max=100"`
	Description optional.Value[string]          `json:"description" patch:"nullable,max=2000"`
	Price       optional.Value[decimal.Decimal] `json:"price"`
	Duration    optional.Value[int]             `json:"duration" patch:"gte=15"`
	Photo       optional.Value[string]          `json:"photo" patch:"nullable,max=255"`
}

// Response DTOs

type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration"`
	Photo       string          `json:"photo,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ServiceSummary is the embedded view of a booked service.
type ServiceSummary struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
}
