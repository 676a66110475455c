package usecase

import (
	"cleaning-service-scheduler/pkg/apperror"
)

var (
	ErrUnauthenticated    = apperror.Forbidden("authentication required")
	ErrInvalidCredentials = apperror.InvalidInput("invalid login or password")
	ErrInvalidToken       = apperror.Forbidden("invalid or expired token")
	ErrTokenRevoked       = apperror.Forbidden("token has been revoked")
	ErrLoginTaken         = apperror.DuplicateResource("login already exists")
	ErrAdminExists        = apperror.Forbidden("an admin already exists, only admins can register admins")
	ErrLastAdmin          = apperror.InvalidState("the last admin cannot be deleted")

	ErrAdminNotFound    = apperror.NotFound("admin not found")
	ErrCustomerNotFound = apperror.NotFound("customer not found")
	ErrEmployeeNotFound = apperror.NotFound("employee not found")

	ErrServiceNotFound    = apperror.NotFound("service not found")
	ErrServiceNameTaken   = apperror.DuplicateResource("service name already exists")
	ErrNegativePrice      = apperror.InvalidInput("price must not be negative")
	ErrScheduleNotFound   = apperror.NotFound("schedule not found")
	ErrInvalidScheduleDay = apperror.InvalidInput("day_of_week must be between 0 and 6")
	ErrInvalidScheduleWin = apperror.InvalidInput("start_time must be before end_time")

	ErrAppointmentNotFound = apperror.NotFound("appointment not found")
	ErrInvalidDate         = apperror.InvalidInput("appointment_date must be RFC3339 or YYYY-MM-DDTHH:MM")
	ErrDateInPast          = apperror.InvalidInput("appointment_date must be in the future")
	ErrInvalidStatus       = apperror.InvalidInput("invalid appointment status")
	ErrCustomerRequired    = apperror.InvalidInput("customer_id is required")
	ErrEmployeeBusy        = apperror.InvalidState("employee is not available")
	ErrEmployeeLocked      = apperror.InvalidState("employee is being booked, retry")

	ErrPaymentNotFound  = apperror.NotFound("payment not found")
	ErrPaymentExists    = apperror.DuplicateResource("payment already exists for this appointment")
	ErrNegativeAmount   = apperror.InvalidInput("amount must not be negative")
	ErrInvalidPayment   = apperror.InvalidInput("invalid payment method or status")
	ErrFeedbackNotFound = apperror.NotFound("feedback not found")
	ErrInvalidRating    = apperror.InvalidInput("rating must be between 1 and 5")
	ErrFeedbackExists   = apperror.DuplicateResource("feedback already exists for this appointment")
	ErrNotCompleted     = apperror.InvalidState("feedback requires a Completed appointment")
	ErrAuditLogNotFound = apperror.NotFound("audit log not found")
)
