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

type CustomerUsecase interface {
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.CustomerResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	customerRepo    repository.CustomerRepository
	appointmentRepo repository.AppointmentRepository
	paymentRepo     repository.PaymentRepository
	feedbackRepo    repository.FeedbackRepository
	auditService    service.AuditService
	tokenStore      service.TokenStore
}

func NewCustomerUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	customerRepo repository.CustomerRepository,
	appointmentRepo repository.AppointmentRepository,
	paymentRepo repository.PaymentRepository,
	feedbackRepo repository.FeedbackRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
) CustomerUsecase {
	return &customerUsecase{
		db:              db,
		log:             log,
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		feedbackRepo:    feedbackRepo,
		auditService:    auditService,
		tokenStore:      tokenStore,
	}
}

func (u *customerUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.CustomerResponse, int64, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return nil, 0, err
	}

	customers, total, err := u.customerRepo.FindAll(u.db.WithContext(ctx), converter.ListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find customers: %+v", err)
		return nil, 0, err
	}

	return converter.CustomersToResponses(customers), total, nil
}

func (u *customerUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAccountRead(actor, entity.RoleCustomer, id); err != nil {
		return nil, err
	}

	customer, err := u.customerRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find customer by ID: %+v", err)
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	return converter.CustomerToResponse(customer), nil
}

func (u *customerUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAccountUpdate(actor, entity.RoleCustomer, id); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	customer, err := u.customerRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find customer by ID: %+v", err)
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	oldValue := converter.CustomerToResponse(customer)

	if req.Login.HasValue() && req.Login.Value != customer.Login {
		existing, err := u.customerRepo.FindByLogin(tx, req.Login.Value)
		if err != nil {
			u.log.Warnf("Failed to find customer by login: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrLoginTaken
		}
	}

	if err := applyAccountPatch(&customer.Account, req.Login, req.Password, req.FirstName, req.LastName); err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	if req.PhoneNumber.IsSet() {
		customer.PhoneNumber = req.PhoneNumber.Value
	}
	if req.Address.IsSet() {
		customer.Address = req.Address.Value
	}

	if err := u.customerRepo.Update(tx, customer); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrLoginTaken
		}
		u.log.Warnf("Failed to update customer: %+v", err)
		return nil, err
	}

	resp := converter.CustomerToResponse(customer)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAccountUpdate, "customer", id.String(), oldValue, resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

// Delete removes the customer with their appointments, the payments and
// feedback of those appointments, and any other feedback they wrote.
func (u *customerUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeAccountDelete(actor, entity.RoleCustomer, id); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	customer, err := u.customerRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find customer by ID: %+v", err)
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}

	appointmentIDs, err := u.appointmentRepo.FindIDsByCustomerID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointments of customer: %+v", err)
		return err
	}
	if _, err := u.paymentRepo.DeleteByAppointmentIDs(tx, appointmentIDs); err != nil {
		u.log.Warnf("Failed to delete payments of customer: %+v", err)
		return err
	}
	if _, err := u.feedbackRepo.DeleteByAppointmentIDs(tx, appointmentIDs); err != nil {
		u.log.Warnf("Failed to delete feedback of customer appointments: %+v", err)
		return err
	}
	if _, err := u.feedbackRepo.DeleteByCustomerID(tx, id); err != nil {
		u.log.Warnf("Failed to delete feedback of customer: %+v", err)
		return err
	}
	if _, err := u.appointmentRepo.DeleteByIDs(tx, appointmentIDs); err != nil {
		u.log.Warnf("Failed to delete appointments of customer: %+v", err)
		return err
	}
	if _, err := u.customerRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete customer: %+v", err)
		return err
	}

	oldValue := map[string]interface{}{
		"customer":     converter.CustomerToResponse(customer),
		"appointments": len(appointmentIDs),
	}
	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionAccountDelete, "customer", id.String(), oldValue); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, entity.RoleCustomer, id); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted customer %s: %+v", id, err)
	}
	return nil
}
