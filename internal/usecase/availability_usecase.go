package usecase

import (
	"context"

	"cleaning-service-scheduler/internal/converter"
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/domain/policy"
	"cleaning-service-scheduler/internal/domain/repository"
	"cleaning-service-scheduler/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	FindAvailableEmployees(ctx context.Context, query dto.AvailabilityQuery) (*dto.AvailableEmployeesResponse, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	employeeRepo repository.EmployeeRepository
	catalogCache service.CatalogCache
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	employeeRepo repository.EmployeeRepository,
	catalogCache service.CatalogCache,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		employeeRepo: employeeRepo,
		catalogCache: catalogCache,
	}
}

// FindAvailableEmployees lists the employees with no live appointment
// overlapping [start, start+duration) of the requested service.
func (u *availabilityUsecase) FindAvailableEmployees(ctx context.Context, query dto.AvailabilityQuery) (*dto.AvailableEmployeesResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAvailabilityQuery(actor); err != nil {
		return nil, err
	}

	start, err := ParseInstant(query.AppointmentDate)
	if err != nil {
		return nil, err
	}

	svc, err := findService(ctx, u.db, u.log, u.serviceRepo, u.catalogCache, query.ServiceID)
	if err != nil {
		return nil, err
	}

	window := entity.NewWindow(start, minutes(svc.Duration))
	employees, err := u.employeeRepo.FindAvailable(u.db.WithContext(ctx), window)
	if err != nil {
		u.log.Warnf("Failed to find available employees: %+v", err)
		return nil, err
	}

	return &dto.AvailableEmployeesResponse{
		ServiceID: svc.ID,
		StartsAt:  window.Start,
		EndsAt:    window.End,
		Employees: converter.EmployeesToSummaries(employees),
	}, nil
}
