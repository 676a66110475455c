package dto

import (
	"time"

	"cleaning-service-scheduler/pkg/optional"

	"github.com/google/uuid"
)

// Request DTOs

type CreateScheduleRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	DayOfWeek  *int      `json:"day_of_week" validate:"required,gte=0,lte=6"`
	StartTime  string    `json:"start_time" validate:"required,hhmm"`
	EndTime    string    `json:"end_time" validate:"required,hhmm"`
}

type UpdateScheduleRequest struct {
	EmployeeID optional.Value[uuid.UUID] `json:"employee_id"`
	DayOfWeek  optional.Value[int]       `json:"day_of_week" patch:"gte=0,lte=6"`
	StartTime  optional.Value[string]    `json:"start_time" patch:"hhmm"`
	EndTime    optional.Value[string]    `json:"end_time" patch:"hhmm"`
}

// Response DTOs

type ScheduleResponse struct {
	ID         uuid.UUID        `json:"id"`
	EmployeeID uuid.UUID        `json:"employee_id"`
	DayOfWeek  int              `json:"day_of_week"`
	StartTime  string           `json:"start_time"`
	EndTime    string           `json:"end_time"`
	Employee   *EmployeeSummary `json:"employee,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
