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

type EmployeeUsecase interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type employeeUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	employeeRepo    repository.EmployeeRepository
	appointmentRepo repository.AppointmentRepository
	feedbackRepo    repository.FeedbackRepository
	scheduleRepo    repository.ScheduleRepository
	auditService    service.AuditService
	tokenStore      service.TokenStore
}

func NewEmployeeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	employeeRepo repository.EmployeeRepository,
	appointmentRepo repository.AppointmentRepository,
	feedbackRepo repository.FeedbackRepository,
	scheduleRepo repository.ScheduleRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
) EmployeeUsecase {
	return &employeeUsecase{
		db:              db,
		log:             log,
		employeeRepo:    employeeRepo,
		appointmentRepo: appointmentRepo,
		feedbackRepo:    feedbackRepo,
		scheduleRepo:    scheduleRepo,
		auditService:    auditService,
		tokenStore:      tokenStore,
	}
}

func (u *employeeUsecase) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.employeeRepo.FindByLogin(tx, req.Login)
	if err != nil {
		u.log.Warnf("Failed to find employee by login: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	role := entity.StaffRole(req.Role)
	if role == "" {
		role = entity.StaffRoleEmployee
	}

	employee := &entity.Employee{
		Account: entity.Account{
			Login:     req.Login,
			Password:  hashedPassword,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
		PhoneNumber: req.PhoneNumber,
		Role:        role,
	}

	if err := u.employeeRepo.Create(tx, employee); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrLoginTaken
		}
		u.log.Warnf("Failed to create employee: %+v", err)
		return nil, err
	}

	resp := converter.EmployeeToResponse(employee)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionAccountRegister, "employee", employee.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *employeeUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.EmployeeResponse, int64, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return nil, 0, err
	}

	employees, total, err := u.employeeRepo.FindAll(u.db.WithContext(ctx), converter.ListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find employees: %+v", err)
		return nil, 0, err
	}

	return converter.EmployeesToResponses(employees), total, nil
}

func (u *employeeUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAccountRead(actor, entity.RoleEmployee, id); err != nil {
		return nil, err
	}

	employee, err := u.employeeRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find employee by ID: %+v", err)
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	return converter.EmployeeToResponse(employee), nil
}

func (u *employeeUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAccountUpdate(actor, entity.RoleEmployee, id); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	employee, err := u.employeeRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find employee by ID: %+v", err)
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	oldValue := converter.EmployeeToResponse(employee)

	if req.Role.HasValue() && entity.StaffRole(req.Role.Value) != employee.Role {
		if err := policy.AuthorizeStaffRoleChange(actor); err != nil {
			return nil, err
		}
		employee.Role = entity.StaffRole(req.Role.Value)
	}

	if req.Login.HasValue() && req.Login.Value != employee.Login {
		existing, err := u.employeeRepo.FindByLogin(tx, req.Login.Value)
		if err != nil {
			u.log.Warnf("Failed to find employee by login: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrLoginTaken
		}
	}

	if err := applyAccountPatch(&employee.Account, req.Login, req.Password, req.FirstName, req.LastName); err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	if req.PhoneNumber.IsSet() {
		employee.PhoneNumber = req.PhoneNumber.Value
	}

	if err := u.employeeRepo.Update(tx, employee); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrLoginTaken
		}
		u.log.Warnf("Failed to update employee: %+v", err)
		return nil, err
	}

	resp := converter.EmployeeToResponse(employee)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAccountUpdate, "employee", id.String(), oldValue, resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

// Delete unassigns the employee from appointments and feedback, which
// survive, and removes their schedules.
func (u *employeeUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeAccountDelete(actor, entity.RoleEmployee, id); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	employee, err := u.employeeRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find employee by ID: %+v", err)
		return err
	}
	if employee == nil {
		return ErrEmployeeNotFound
	}

	unassigned, err := u.appointmentRepo.UnassignEmployee(tx, id)
	if err != nil {
		u.log.Warnf("Failed to unassign employee from appointments: %+v", err)
		return err
	}
	if _, err := u.feedbackRepo.UnassignEmployee(tx, id); err != nil {
		u.log.Warnf("Failed to unassign employee from feedback: %+v", err)
		return err
	}
	if _, err := u.scheduleRepo.DeleteByEmployeeID(tx, id); err != nil {
		u.log.Warnf("Failed to delete schedules of employee: %+v", err)
		return err
	}
	if _, err := u.employeeRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete employee: %+v", err)
		return err
	}

	oldValue := map[string]interface{}{
		"employee":                converter.EmployeeToResponse(employee),
		"unassigned_appointments": unassigned,
	}
	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionAccountDelete, "employee", id.String(), oldValue); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, entity.RoleEmployee, id); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted employee %s: %+v", id, err)
	}
	return nil
}
