package converter

import (
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to ServiceResponse DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	return &dto.ServiceResponse{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		Price:       service.Price,
		Duration:    service.Duration,
		Photo:       service.Photo,
		CreatedAt:   service.CreatedAt,
		UpdatedAt:   service.UpdatedAt,
	}
}

func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = *ServiceToResponse(&services[i])
	}
	return responses
}

func ServiceToSummary(service *entity.Service) *dto.ServiceSummary {
	if service == nil {
		return nil
	}

	return &dto.ServiceSummary{
		ID:       service.ID,
		Name:     service.Name,
		Price:    service.Price,
		Duration: service.Duration,
	}
}

// ScheduleToResponse converts a Schedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.Schedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	return &dto.ScheduleResponse{
		ID:         schedule.ID,
		EmployeeID: schedule.EmployeeID,
		DayOfWeek:  schedule.DayOfWeek,
		StartTime:  schedule.StartTime,
		EndTime:    schedule.EndTime,
		Employee:   EmployeeToSummary(schedule.Employee),
		CreatedAt:  schedule.CreatedAt,
		UpdatedAt:  schedule.UpdatedAt,
	}
}

func SchedulesToResponses(schedules []entity.Schedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}
