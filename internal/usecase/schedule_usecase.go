package usecase

import (
	"context"

	"cleaning-service-scheduler/internal/converter"
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/domain/policy"
	"cleaning-service-scheduler/internal/domain/repository"
	"cleaning-service-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleUsecase interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.ScheduleResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ScheduleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type scheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.ScheduleRepository
	employeeRepo repository.EmployeeRepository
	auditService service.AuditService
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	employeeRepo repository.EmployeeRepository,
	auditService service.AuditService,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		employeeRepo: employeeRepo,
		auditService: auditService,
	}
}

func (u *scheduleUsecase) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return nil, err
	}

	schedule := &entity.Schedule{
		EmployeeID: req.EmployeeID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if err := checkScheduleWindow(schedule); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	employee, err := u.employeeRepo.FindByID(tx, req.EmployeeID)
	if err != nil {
		u.log.Warnf("Failed to find employee by ID: %+v", err)
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}
	schedule.Employee = employee

	resp := converter.ScheduleToResponse(schedule)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionScheduleCreate, "schedule", schedule.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *scheduleUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.ScheduleResponse, int64, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, 0, err
	}

	schedules, total, err := u.scheduleRepo.FindAll(u.db.WithContext(ctx), policy.ScheduleScope(actor), converter.ListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find schedules: %+v", err)
		return nil, 0, err
	}

	return converter.SchedulesToResponses(schedules), total, nil
}

func (u *scheduleUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ScheduleResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find schedule by ID: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if err := policy.AuthorizeScheduleRead(actor, schedule); err != nil {
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule, err := u.scheduleRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule by ID: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	reassign := req.EmployeeID.HasValue() && req.EmployeeID.Value != schedule.EmployeeID
	if err := policy.AuthorizeScheduleUpdate(actor, schedule, reassign); err != nil {
		return nil, err
	}
	oldValue := converter.ScheduleToResponse(schedule)

	if reassign {
		employee, err := u.employeeRepo.FindByID(tx, req.EmployeeID.Value)
		if err != nil {
			u.log.Warnf("Failed to find employee by ID: %+v", err)
			return nil, err
		}
		if employee == nil {
			return nil, ErrEmployeeNotFound
		}
		schedule.EmployeeID = employee.ID
		schedule.Employee = employee
	}
	if req.DayOfWeek.HasValue() {
		schedule.DayOfWeek = req.DayOfWeek.Value
	}
	if req.StartTime.HasValue() {
		schedule.StartTime = req.StartTime.Value
	}
	if req.EndTime.HasValue() {
		schedule.EndTime = req.EndTime.Value
	}
	if err := checkScheduleWindow(schedule); err != nil {
		return nil, err
	}

	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		u.log.Warnf("Failed to update schedule: %+v", err)
		return nil, err
	}

	resp := converter.ScheduleToResponse(schedule)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionScheduleUpdate, "schedule", id.String(), oldValue, resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *scheduleUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule, err := u.scheduleRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule by ID: %+v", err)
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}

	if _, err := u.scheduleRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete schedule: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionScheduleDelete, "schedule", id.String(), converter.ScheduleToResponse(schedule)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func checkScheduleWindow(s *entity.Schedule) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return ErrInvalidScheduleDay
	}
	if !s.ValidWindow() {
		return ErrInvalidScheduleWin
	}
	return nil
}
