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

type AdminUsecase interface {
	GetAll(ctx context.Context, query dto.ListQuery) ([]dto.AdminResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AdminResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAdminRequest) (*dto.AdminResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	auditService service.AuditService
	tokenStore   service.TokenStore
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
) AdminUsecase {
	return &adminUsecase{
		db:           db,
		log:          log,
		adminRepo:    adminRepo,
		auditService: auditService,
		tokenStore:   tokenStore,
	}
}

func (u *adminUsecase) GetAll(ctx context.Context, query dto.ListQuery) ([]dto.AdminResponse, int64, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := policy.AdminOnly(actor); err != nil {
		return nil, 0, err
	}

	admins, total, err := u.adminRepo.FindAll(u.db.WithContext(ctx), converter.ListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find admins: %+v", err)
		return nil, 0, err
	}

	return converter.AdminsToResponses(admins), total, nil
}

func (u *adminUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AdminResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAccountRead(actor, entity.RoleAdmin, id); err != nil {
		return nil, err
	}

	admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	return converter.AdminToResponse(admin), nil
}

func (u *adminUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeAccountUpdate(actor, entity.RoleAdmin, id); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	admin, err := u.adminRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	oldValue := converter.AdminToResponse(admin)

	if req.Login.HasValue() && req.Login.Value != admin.Login {
		existing, err := u.adminRepo.FindByLogin(tx, req.Login.Value)
		if err != nil {
			u.log.Warnf("Failed to find admin by login: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrLoginTaken
		}
	}

	if err := applyAccountPatch(&admin.Account, req.Login, req.Password, req.FirstName, req.LastName); err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	if err := u.adminRepo.Update(tx, admin); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrLoginTaken
		}
		u.log.Warnf("Failed to update admin: %+v", err)
		return nil, err
	}

	resp := converter.AdminToResponse(admin)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAccountUpdate, "admin", id.String(), oldValue, resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *adminUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeAccountDelete(actor, entity.RoleAdmin, id); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	admin, err := u.adminRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	count, err := u.adminRepo.Count(tx)
	if err != nil {
		u.log.Warnf("Failed to count admins: %+v", err)
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}

	if _, err := u.adminRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete admin: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionAccountDelete, "admin", id.String(), converter.AdminToResponse(admin)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, entity.RoleAdmin, id); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted admin %s: %+v", id, err)
	}
	return nil
}
