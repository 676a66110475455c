package converter

import (
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse
// DTO. Associations are included when they were loaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		CustomerID:      appointment.CustomerID,
		EmployeeID:      appointment.EmployeeID,
		ServiceID:       appointment.ServiceID,
		AppointmentDate: appointment.AppointmentDate.UTC(),
		EndsAt:          appointment.EndsAt.UTC(),
		Status:          string(appointment.Status),
		Service:         ServiceToSummary(appointment.Service),
		Employee:        EmployeeToSummary(appointment.Employee),
		Payment:         PaymentToResponse(appointment.Payment),
		Feedback:        FeedbackToResponse(appointment.Feedback),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// PaymentToResponse converts a Payment entity to PaymentResponse DTO
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		ID:            payment.ID,
		AppointmentID: payment.AppointmentID,
		Amount:        payment.Amount,
		PaymentMethod: string(payment.PaymentMethod),
		Status:        string(payment.Status),
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}

func PaymentsToResponses(payments []entity.Payment) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *PaymentToResponse(&payments[i])
	}
	return responses
}

// FeedbackToResponse converts a Feedback entity to FeedbackResponse DTO
func FeedbackToResponse(feedback *entity.Feedback) *dto.FeedbackResponse {
	if feedback == nil {
		return nil
	}

	return &dto.FeedbackResponse{
		ID:            feedback.ID,
		AppointmentID: feedback.AppointmentID,
		CustomerID:    feedback.CustomerID,
		EmployeeID:    feedback.EmployeeID,
		Rating:        feedback.Rating,
		Comment:       feedback.Comment,
		CreatedAt:     feedback.CreatedAt,
		UpdatedAt:     feedback.UpdatedAt,
	}
}

func FeedbacksToResponses(feedbacks []entity.Feedback) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, len(feedbacks))
	for i := range feedbacks {
		responses[i] = *FeedbackToResponse(&feedbacks[i])
	}
	return responses
}
