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

type FeedbackUsecase interface {
	Create(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.FeedbackResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.FeedbackResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateFeedbackRequest) (*dto.FeedbackResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type feedbackUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	feedbackRepo    repository.FeedbackRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewFeedbackUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	feedbackRepo repository.FeedbackRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) FeedbackUsecase {
	return &feedbackUsecase{
		db:              db,
		log:             log,
		feedbackRepo:    feedbackRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// Create checks, in order: the appointment exists, the actor may rate it,
// it is Completed, and it has no feedback yet.
func (u *feedbackUsecase) Create(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if !entity.ValidRating(req.Rating) {
		return nil, ErrInvalidRating
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
	if err := policy.AuthorizeFeedbackCreate(actor, appointment); err != nil {
		return nil, err
	}
	if !appointment.IsCompleted() {
		return nil, ErrNotCompleted
	}
	if appointment.Feedback != nil {
		return nil, ErrFeedbackExists
	}

	feedback := &entity.Feedback{
		AppointmentID: appointment.ID,
		CustomerID:    appointment.CustomerID,
		EmployeeID:    appointment.EmployeeID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := u.feedbackRepo.Create(tx, feedback); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrFeedbackExists
		}
		u.log.Warnf("Failed to create feedback: %+v", err)
		return nil, err
	}

	resp := converter.FeedbackToResponse(feedback)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionFeedbackCreate, "feedback", feedback.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrFeedbackExists
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *feedbackUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.FeedbackResponse, int64, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, 0, err
	}

	feedbacks, total, err := u.feedbackRepo.FindAll(u.db.WithContext(ctx), policy.FeedbackScope(actor), converter.ListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find feedback: %+v", err)
		return nil, 0, err
	}

	return converter.FeedbacksToResponses(feedbacks), total, nil
}

func (u *feedbackUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.FeedbackResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	feedback, err := u.feedbackRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find feedback by ID: %+v", err)
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	if err := policy.AuthorizeFeedbackRead(actor, feedback); err != nil {
		return nil, err
	}

	return converter.FeedbackToResponse(feedback), nil
}

func (u *feedbackUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateFeedbackRequest) (*dto.FeedbackResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req.Rating.HasValue() && !entity.ValidRating(req.Rating.Value) {
		return nil, ErrInvalidRating
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	feedback, err := u.feedbackRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find feedback by ID: %+v", err)
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	if err := policy.AuthorizeFeedbackModify(actor, feedback); err != nil {
		return nil, err
	}
	oldValue := converter.FeedbackToResponse(feedback)

	if req.Rating.HasValue() {
		feedback.Rating = req.Rating.Value
	}
	if req.Comment.IsSet() {
		feedback.Comment = req.Comment.Value
	}

	if err := u.feedbackRepo.Update(tx, feedback); err != nil {
		u.log.Warnf("Failed to update feedback: %+v", err)
		return nil, err
	}

	resp := converter.FeedbackToResponse(feedback)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionFeedbackUpdate, "feedback", id.String(), oldValue, resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *feedbackUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	feedback, err := u.feedbackRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find feedback by ID: %+v", err)
		return err
	}
	if feedback == nil {
		return ErrFeedbackNotFound
	}
	if err := policy.AuthorizeFeedbackModify(actor, feedback); err != nil {
		return err
	}

	if _, err := u.feedbackRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete feedback: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionFeedbackDelete, "feedback", id.String(), converter.FeedbackToResponse(feedback)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
