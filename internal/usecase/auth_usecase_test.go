package usecase

import (
	"context"
	"testing"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/testfixtures"
	"cleaning-service-scheduler/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAdminBootstrap(t *testing.T) {
	env := newTestEnv(t)
	req := &dto.RegisterAdminRequest{Login: "root_admin", Password: "secret123", FirstName: "Ada", LastName: "Root"}

	first, err := env.auth.RegisterAdmin(context.Background(), req)
	require.NoError(t, err)

	_, err = env.auth.RegisterAdmin(context.Background(), &dto.RegisterAdminRequest{
		Login: "second_admin", Password: "secret123", FirstName: "Bo", LastName: "Next",
	})
	assert.ErrorIs(t, err, ErrAdminExists)

	customer := testfixtures.SeedCustomer(t, env.db)
	_, err = env.auth.RegisterAdmin(asCustomer(customer), &dto.RegisterAdminRequest{
		Login: "second_admin", Password: "secret123", FirstName: "Bo", LastName: "Next",
	})
	assert.ErrorIs(t, err, ErrAdminExists)

	second, err := env.auth.RegisterAdmin(as(entity.AdminActor(first.ID)), &dto.RegisterAdminRequest{
		Login: "second_admin", Password: "secret123", FirstName: "Bo", LastName: "Next",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRegisterCustomerRejectsTakenLogin(t *testing.T) {
	env := newTestEnv(t)
	req := &dto.RegisterCustomerRequest{Login: "jane_doe", Password: "secret123", FirstName: "Jane", LastName: "Doe"}

	created, err := env.auth.RegisterCustomer(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "jane_doe", created.Login)

	_, err = env.auth.RegisterCustomer(context.Background(), req)
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestLoginRefreshLogout(t *testing.T) {
	env := newTestEnv(t)
	employee := testfixtures.SeedEmployee(t, env.db, "", "")

	_, err := env.auth.Login(context.Background(), entity.RoleEmployee, &dto.LoginRequest{Login: employee.Login, Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Logins are per role: an employee is not a customer.
	_, err = env.auth.Login(context.Background(), entity.RoleCustomer, &dto.LoginRequest{Login: employee.Login, Password: testfixtures.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens, err := env.auth.Login(context.Background(), entity.RoleEmployee, &dto.LoginRequest{Login: employee.Login, Password: testfixtures.Password})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, string(entity.RoleEmployee), tokens.Role)

	claims, err := env.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, employee.ID, claims.SubjectID)

	rotated, err := env.auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	_, err = env.auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked, "refresh tokens are single use")

	_, err = env.auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: rotated.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	rotatedAccess, err := env.jwt.ValidateToken(rotated.AccessToken)
	require.NoError(t, err)
	ctx := asEmployee(employee)

	me, err := env.auth.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me.Employee)
	assert.Equal(t, employee.Login, me.Employee.Login)
	assert.Nil(t, me.Customer)

	require.NoError(t, env.auth.Logout(ctx, rotatedAccess.TokenID, &dto.LogoutRequest{RefreshToken: rotated.RefreshToken}))

	ok, err := env.tokens.Exists(ctx, jwt.AccessToken, entity.RoleEmployee, employee.ID, rotatedAccess.TokenID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestDeletingAccountRevokesTokens(t *testing.T) {
	env := newTestEnv(t)
	customer := testfixtures.SeedCustomer(t, env.db)

	tokens, err := env.auth.Login(context.Background(), entity.RoleCustomer, &dto.LoginRequest{Login: customer.Login, Password: testfixtures.Password})
	require.NoError(t, err)
	claims, err := env.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, env.customers.Delete(asCustomer(customer), customer.ID))

	ok, err := env.tokens.Exists(context.Background(), jwt.AccessToken, entity.RoleCustomer, customer.ID, claims.TokenID)
	require.NoError(t, err)
	assert.False(t, ok)
}
