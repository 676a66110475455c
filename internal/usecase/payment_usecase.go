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

type PaymentUsecase interface {
	Create(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.PaymentResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	paymentRepo     repository.PaymentRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	paymentRepo repository.PaymentRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) PaymentUsecase {
	return &paymentUsecase{
		db:              db,
		log:             log,
		paymentRepo:     paymentRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *paymentUsecase) Create(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, ErrInvalidPayment
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if err := policy.AuthorizePaymentCreate(actor, appointment); err != nil {
		return nil, err
	}
	if appointment.Payment != nil {
		return nil, ErrPaymentExists
	}

	payment := &entity.Payment{
		AppointmentID: appointment.ID,
		PaymentMethod: method,
		Status:        entity.PaymentStatusPending,
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	} else if appointment.Service != nil {
		payment.Amount = appointment.Service.Price
	}

	if err := u.paymentRepo.Create(tx, payment); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrPaymentExists
		}
		u.log.Warnf("Failed to create payment: %+v", err)
		return nil, err
	}

	resp := converter.PaymentToResponse(payment)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionPaymentCreate, "payment", payment.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrPaymentExists
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *paymentUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.PaymentResponse, int64, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, 0, err
	}

	payments, total, err := u.paymentRepo.FindAll(u.db.WithContext(ctx), policy.AppointmentScope(actor), converter.ListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find payments: %+v", err)
		return nil, 0, err
	}

	return converter.PaymentsToResponses(payments), total, nil
}

// load returns the payment with the appointment that owns it.
func (u *paymentUsecase) load(db *gorm.DB, id uuid.UUID) (*entity.Payment, *entity.Appointment, error) {
	payment, err := u.paymentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find payment by ID: %+v", err)
		return nil, nil, err
	}
	if payment == nil {
		return nil, nil, ErrPaymentNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(db, payment.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, nil, err
	}
	if appointment == nil {
		return nil, nil, ErrAppointmentNotFound
	}
	return payment, appointment, nil
}

func (u *paymentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	payment, appointment, err := u.load(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizePaymentRead(actor, appointment); err != nil {
		return nil, err
	}

	return converter.PaymentToResponse(payment), nil
}

func (u *paymentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	var change policy.PaymentChange
	var status entity.PaymentStatus
	if req.Status.HasValue() {
		status = entity.PaymentStatus(req.Status.Value)
		if !status.Valid() {
			return nil, ErrInvalidPayment
		}
		change.Status = &status
	}
	if req.PaymentMethod.HasValue() && !entity.PaymentMethod(req.PaymentMethod.Value).Valid() {
		return nil, ErrInvalidPayment
	}
	if req.Amount.HasValue() && req.Amount.Value.IsNegative() {
		return nil, ErrNegativeAmount
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	payment, appointment, err := u.load(tx, id)
	if err != nil {
		return nil, err
	}

	change.Amount = req.Amount.HasValue() && !req.Amount.Value.Equal(payment.Amount)
	change.Method = req.PaymentMethod.HasValue() && entity.PaymentMethod(req.PaymentMethod.Value) != payment.PaymentMethod
	if err := policy.AuthorizePaymentUpdate(actor, appointment, change); err != nil {
		return nil, err
	}
	oldValue := converter.PaymentToResponse(payment)

	if change.Amount {
		payment.Amount = req.Amount.Value
	}
	if change.Method {
		payment.PaymentMethod = entity.PaymentMethod(req.PaymentMethod.Value)
	}
	if change.Status != nil {
		payment.Status = status
	}

	if err := u.paymentRepo.Update(tx, payment); err != nil {
		u.log.Warnf("Failed to update payment: %+v", err)
		return nil, err
	}

	resp := converter.PaymentToResponse(payment)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionPaymentUpdate, "payment", id.String(), oldValue, resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *paymentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err := policy.AuthorizePaymentDelete(actor); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	payment, err := u.paymentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find payment by ID: %+v", err)
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}

	if _, err := u.paymentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete payment: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionPaymentDelete, "payment", id.String(), converter.PaymentToResponse(payment)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
