package usecase

import (
	"context"

	"cleaning-service-scheduler/internal/converter"
	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/domain/repository"
	repoImpl "cleaning-service-scheduler/internal/repository"
	"cleaning-service-scheduler/internal/service"
	"cleaning-service-scheduler/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	RegisterCustomer(ctx context.Context, req *dto.RegisterCustomerRequest) (*dto.CustomerResponse, error)
	RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) (*dto.AdminResponse, error)
	Login(ctx context.Context, role entity.Role, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID string, req *dto.LogoutRequest) error
	Me(ctx context.Context) (*dto.MeResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	tokenStore   service.TokenStore
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		adminRepo:    adminRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		auditService: auditService,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
	}
}

func (u *authUsecase) RegisterCustomer(ctx context.Context, req *dto.RegisterCustomerRequest) (*dto.CustomerResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.customerRepo.FindByLogin(tx, req.Login)
	if err != nil {
		u.log.Warnf("Failed to find customer by login: %+v", err)
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

	customer := &entity.Customer{
		Account: entity.Account{
			Login:     req.Login,
			Password:  hashedPassword,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}

	if err := u.customerRepo.Create(tx, customer); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrLoginTaken
		}
		u.log.Warnf("Failed to create customer: %+v", err)
		return nil, err
	}

	resp := converter.CustomerToResponse(customer)
	if err := u.auditService.LogCreate(ctx, tx, entity.CustomerActor(customer.ID), entity.AuditActionAccountRegister, "customer", customer.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

// RegisterAdmin is open while no admin exists so the first one can be
// created; afterwards only an authenticated admin may add another.
func (u *authUsecase) RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) (*dto.AdminResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := u.adminRepo.Count(tx)
	if err != nil {
		u.log.Warnf("Failed to count admins: %+v", err)
		return nil, err
	}

	actor, authenticated := entity.ActorFromContext(ctx)
	if count > 0 && (!authenticated || !actor.IsAdmin()) {
		return nil, ErrAdminExists
	}

	existing, err := u.adminRepo.FindByLogin(tx, req.Login)
	if err != nil {
		u.log.Warnf("Failed to find admin by login: %+v", err)
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

	admin := &entity.Admin{
		Account: entity.Account{
			Login:     req.Login,
			Password:  hashedPassword,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
	}

	if err := u.adminRepo.Create(tx, admin); err != nil {
		if repoImpl.IsDuplicateKeyError(err) {
			return nil, ErrLoginTaken
		}
		u.log.Warnf("Failed to create admin: %+v", err)
		return nil, err
	}

	if !authenticated {
		actor = entity.AdminActor(admin.ID)
	}
	resp := converter.AdminToResponse(admin)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionAccountRegister, "admin", admin.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

func (u *authUsecase) Login(ctx context.Context, role entity.Role, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		account *entity.Account
		err     error
	)
	switch role {
	case entity.RoleAdmin:
		var admin *entity.Admin
		if admin, err = u.adminRepo.FindByLogin(db, req.Login); admin != nil {
			account = &admin.Account
		}
	case entity.RoleCustomer:
		var customer *entity.Customer
		if customer, err = u.customerRepo.FindByLogin(db, req.Login); customer != nil {
			account = &customer.Account
		}
	case entity.RoleEmployee:
		var employee *entity.Employee
		if employee, err = u.employeeRepo.FindByLogin(db, req.Login); employee != nil {
			account = &employee.Account
		}
	default:
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		u.log.Warnf("Failed to find %s by login: %+v", role, err)
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, role, account.ID, account.Login)
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	role := entity.Role(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenStore.Exists(ctx, jwt.RefreshToken, role, claims.SubjectID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	// Rotate: the presented refresh token is single use.
	if err := u.tokenStore.Revoke(ctx, jwt.RefreshToken, role, claims.SubjectID, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, role, claims.SubjectID, claims.Login)
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID string, req *dto.LogoutRequest) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	if err := u.tokenStore.Revoke(ctx, jwt.AccessToken, actor.Role, actor.ID, accessTokenID); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	if req == nil || req.RefreshToken == "" {
		return nil
	}

	// Only revoke a refresh token that belongs to the same actor.
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil
	}
	if !actor.Is(entity.Role(claims.Role), claims.SubjectID) {
		return nil
	}
	if err := u.tokenStore.Revoke(ctx, jwt.RefreshToken, actor.Role, actor.ID, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete refresh token: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) Me(ctx context.Context) (*dto.MeResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	resp := &dto.MeResponse{Role: string(actor.Role)}

	switch actor.Role {
	case entity.RoleAdmin:
		admin, err := u.adminRepo.FindByID(db, actor.ID)
		if err != nil {
			u.log.Warnf("Failed to find admin by ID: %+v", err)
			return nil, err
		}
		if admin == nil {
			return nil, ErrAdminNotFound
		}
		resp.Admin = converter.AdminToResponse(admin)
	case entity.RoleCustomer:
		customer, err := u.customerRepo.FindByID(db, actor.ID)
		if err != nil {
			u.log.Warnf("Failed to find customer by ID: %+v", err)
			return nil, err
		}
		if customer == nil {
			return nil, ErrCustomerNotFound
		}
		resp.Customer = converter.CustomerToResponse(customer)
	case entity.RoleEmployee:
		employee, err := u.employeeRepo.FindByID(db, actor.ID)
		if err != nil {
			u.log.Warnf("Failed to find employee by ID: %+v", err)
			return nil, err
		}
		if employee == nil {
			return nil, ErrEmployeeNotFound
		}
		resp.Employee = converter.EmployeeToResponse(employee)
	}

	return resp, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, role entity.Role, subjectID uuid.UUID, login string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(string(role), subjectID, login)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(string(role), subjectID, login)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, jwt.AccessToken, role, subjectID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, jwt.RefreshToken, role, subjectID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		Role:         string(role),
	}, nil
}
