package converter

import (
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
)

// AdminToResponse converts an Admin entity to AdminResponse DTO
func AdminToResponse(admin *entity.Admin) *dto.AdminResponse {
	if admin == nil {
		return nil
	}

	return &dto.AdminResponse{
		ID:        admin.ID,
		Login:     admin.Login,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}

func AdminsToResponses(admins []entity.Admin) []dto.AdminResponse {
	responses := make([]dto.AdminResponse, len(admins))
	for i := range admins {
		responses[i] = *AdminToResponse(&admins[i])
	}
	return responses
}

// CustomerToResponse converts a Customer entity to CustomerResponse DTO
func CustomerToResponse(customer *entity.Customer) *dto.CustomerResponse {
	if customer == nil {
		return nil
	}

	return &dto.CustomerResponse{
		ID:          customer.ID,
		Login:       customer.Login,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		PhoneNumber: customer.PhoneNumber,
		Address:     customer.Address,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}

func CustomersToResponses(customers []entity.Customer) []dto.CustomerResponse {
	responses := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = *CustomerToResponse(&customers[i])
	}
	return responses
}

// EmployeeToResponse converts an Employee entity to EmployeeResponse DTO
func EmployeeToResponse(employee *entity.Employee) *dto.EmployeeResponse {
	if employee == nil {
		return nil
	}

	return &dto.EmployeeResponse{
		ID:          employee.ID,
		Login:       employee.Login,
		FirstName:   employee.FirstName,
		LastName:    employee.LastName,
		PhoneNumber: employee.PhoneNumber,
		Role:        string(employee.Role),
		CreatedAt:   employee.CreatedAt,
		UpdatedAt:   employee.UpdatedAt,
	}
}

func EmployeesToResponses(employees []entity.Employee) []dto.EmployeeResponse {
	responses := make([]dto.EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = *EmployeeToResponse(&employees[i])
	}
	return responses
}

func EmployeeToSummary(employee *entity.Employee) *dto.EmployeeSummary {
	if employee == nil {
		return nil
	}

	return &dto.EmployeeSummary{
		ID:        employee.ID,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Role:      string(employee.Role),
	}
}

func EmployeesToSummaries(employees []entity.Employee) []dto.EmployeeSummary {
	summaries := make([]dto.EmployeeSummary, len(employees))
	for i := range employees {
		summaries[i] = *EmployeeToSummary(&employees[i])
	}
	return summaries
}
