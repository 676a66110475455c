package usecase

import (
	"context"

	"cleaning-service-scheduler/internal/converter"
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/domain/policy"
	"cleaning-service-scheduler/internal/domain/repository"
	repoImpl "cleaning-service-scheduler/internal/repository"
	"cleaning-service-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceUsecase interface {
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.ServiceResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	serviceRepo     repository.ServiceRepository
	employeeRepo    repository.EmployeeRepository
	appointmentRepo repository.AppointmentRepository
	paymentRepo     repository.PaymentRepository
	feedbackRepo    repository.FeedbackRepository
	auditService    service.AuditService
	catalogCache    service.CatalogCache
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	employeeRepo repository.EmployeeRepository,
	appointmentRepo repository.AppointmentRepository,
	paymentRepo repository.PaymentRepository,
	feedbackRepo repository.FeedbackRepository,
	auditService service.AuditService,
	catalogCache service.CatalogCache,
) ServiceUsecase {
	return &serviceUsecase{
		db:              db,
		log:             log,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		feedbackRepo:    feedbackRepo,
		auditService:    auditService,
		catalogCache:    catalogCache,
	}
}

func (u *serviceUsecase) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return nil, err
	}
	if req.Price == nil || req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.serviceRepo.FindByName(tx, req.Name)
	if err != nil {
		u.log.Warnf("Failed to find service by name: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrServiceNameTaken
	}

	svc := &entity.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Duration:    req.Duration,
		Photo:       req.Photo,
	}

	if err := u.serviceRepo.Create(tx, svc); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrServiceNameTaken
		}
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	resp := converter.ServiceToResponse(svc)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionServiceCreate, "service", svc.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *serviceUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.ServiceResponse, int64, error) {
	services, total, err := u.serviceRepo.FindAll(u.db.WithContext(ctx), converter.ListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, 0, err
	}

	return converter.ServicesToResponses(services), total, nil
}

func (u *serviceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	return findService(ctx, u.db, u.log, u.serviceRepo, u.catalogCache, id)
}

func (u *serviceUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return nil, err
	}
	if req.Price.HasValue() && req.Price.Value.IsNegative() {
		return nil, ErrNegativePrice
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service by ID: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	oldValue := converter.ServiceToResponse(svc)

	if req.Name.HasValue() && req.Name.Value != svc.Name {
		existing, err := u.serviceRepo.FindByName(tx, req.Name.Value)
		if err != nil {
			u.log.Warnf("Failed to find service by name: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrServiceNameTaken
		}
		svc.Name = req.Name.Value
	}
	if req.Description.IsSet() {
		svc.Description = req.Description.Value
	}
	if req.Price.HasValue() {
		svc.Price = req.Price.Value
	}
	if req.Photo.IsSet() {
		svc.Photo = req.Photo.Value
	}

	durationChanged := req.Duration.HasValue() && req.Duration.Value != svc.Duration
	if durationChanged {
		svc.Duration = req.Duration.Value
	}

	if err := u.serviceRepo.Update(tx, svc); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrServiceNameTaken
		}
		u.log.Warnf("Failed to update service: %+v", err)
		return nil, err
	}

	if durationChanged {
		if err := u.resizeActiveAppointments(tx, svc); err != nil {
			return nil, err
		}
	}

	resp := converter.ServiceToResponse(svc)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionServiceUpdate, "service", id.String(), oldValue, resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.catalogCache.Invalidate(ctx, id)
	return resp, nil
}

// resizeActiveAppointments recomputes ends_at of the non-terminal
// appointments booked for svc after its duration changed.
func (u *serviceUsecase) resizeActiveAppointments(tx *gorm.DB, svc *entity.Service) error {
	appointments, err := u.appointmentRepo.FindActiveByServiceID(tx, svc.ID)
	if err != nil {
		u.log.Warnf("Failed to find active appointments of service: %+v", err)
		return err
	}

	locked := make(map[uuid.UUID]bool)
	for _, a := range appointments {
		window := entity.NewWindow(a.AppointmentDate, svc.DurationTime())
		if a.EmployeeID != nil {
			if err := u.checkStillFree(tx, *a.EmployeeID, window, a.ID, locked); err != nil {
				return err
			}
		}
		if err := u.appointmentRepo.UpdateWindow(tx, a.ID, window); err != nil {
			if repoImpl.IsExclusionViolation(err) {
				return ErrEmployeeBusy
			}
			u.log.Warnf("Failed to update appointment window: %+v", err)
			return err
		}
	}
	return nil
}

// checkStillFree rejects a stretched window that now runs into another
// live appointment of the same employee. Each employee row is locked once.
func (u *serviceUsecase) checkStillFree(tx *gorm.DB, employeeID uuid.UUID, window entity.Window, appointmentID uuid.UUID, locked map[uuid.UUID]bool) error {
	if !locked[employeeID] {
		if _, err := u.employeeRepo.FindByIDForUpdate(tx, employeeID); err != nil {
			u.log.Warnf("Failed to lock employee: %+v", err)
			return err
		}
		locked[employeeID] = true
	}
	busy, err := u.appointmentRepo.HasConflict(tx, employeeID, window, &appointmentID)
	if err != nil {
		u.log.Warnf("Failed to check employee availability: %+v", err)
		return err
	}
	if busy {
		return ErrEmployeeBusy
	}
	return nil
}

// Delete removes the service and every appointment booked for it, with
// their payments and feedback.
func (u *serviceUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service by ID: %+v", err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	appointmentIDs, err := u.appointmentRepo.FindIDsByServiceID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointments of service: %+v", err)
		return err
	}
	if _, err := u.paymentRepo.DeleteByAppointmentIDs(tx, appointmentIDs); err != nil {
		u.log.Warnf("Failed to delete payments of service: %+v", err)
		return err
	}
	if _, err := u.feedbackRepo.DeleteByAppointmentIDs(tx, appointmentIDs); err != nil {
		u.log.Warnf("Failed to delete feedback of service: %+v", err)
		return err
	}
	if _, err := u.appointmentRepo.DeleteByIDs(tx, appointmentIDs); err != nil {
		u.log.Warnf("Failed to delete appointments of service: %+v", err)
		return err
	}
	if _, err := u.serviceRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete service: %+v", err)
		return err
	}

	oldValue := map[string]interface{}{
		"service":      converter.ServiceToResponse(svc),
		"appointments": len(appointmentIDs),
	}
	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionServiceDelete, "service", id.String(), oldValue); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.catalogCache.Invalidate(ctx, id)
	return nil
}

// findService reads a catalog entry through the cache.
func findService(
	ctx context.Context,
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	cache service.CatalogCache,
	id uuid.UUID,
) (*dto.ServiceResponse, error) {
	var cached dto.ServiceResponse
	if cache.Get(ctx, id, &cached) {
		return &cached, nil
	}
	generation, cacheable := cache.Generation(ctx, id)

	svc, err := serviceRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		log.Warnf("Failed to find service by ID: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	resp := converter.ServiceToResponse(svc)
	if cacheable {
		cache.Set(ctx, id, generation, resp)
	}
	return resp, nil
}
