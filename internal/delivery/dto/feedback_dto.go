package dto

import (
	"time"

	"cleaning-service-scheduler/pkg/optional"

	"github.com/google/uuid"
)

// Request DTOs

type CreateFeedbackRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
	Rating        int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       string    `json:"comment" validate:"omitempty,max=1000"`
}

type UpdateFeedbackRequest struct {
	Rating  optional.Value[int]    `json:"rating" patch:"gte=1,lte=5"`
	Comment optional.Value[string] `json:"comment" patch:"nullable,max=1000"`
}

// Response DTOs

type FeedbackResponse struct {
	ID            uuid.UUID  `json:"id"`
	AppointmentID uuid.UUID  `json:"appointment_id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	EmployeeID    *uuid.UUID `json:"employee_id"`
	Rating        int        `json:"rating"`
	Comment       string     `json:"comment,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
