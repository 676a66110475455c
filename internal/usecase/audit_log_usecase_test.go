package usecase

import (
	"fmt"
	"testing"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/domain/policy"
	"cleaning-service-scheduler/internal/testfixtures"
	"cleaning-service-scheduler/pkg/optional"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditTrailIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	admin := testfixtures.SeedAdmin(t, env.db)
	customer := testfixtures.SeedCustomer(t, env.db)

	_, err := env.customers.Update(asCustomer(customer), customer.ID, &dto.UpdateCustomerRequest{
		Password: optional.Of("another-secret"),
	})
	require.NoError(t, err)

	_, _, err = env.auditLogs.GetAll(asCustomer(customer), dto.AuditLogQuery{})
	assert.ErrorIs(t, err, policy.ErrForbidden)

	logs, total, err := env.auditLogs.GetAll(asAdmin(admin), dto.AuditLogQuery{Action: entity.AuditActionAccountUpdate})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, string(entity.RoleCustomer), logs[0].ActorRole)
	require.NotNil(t, logs[0].ActorID)
	assert.Equal(t, customer.ID, *logs[0].ActorID)
	assert.NotContains(t, fmt.Sprint(logs[0].Metadata), "another-secret")

	one, err := env.auditLogs.GetByID(asAdmin(admin), logs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, logs[0].ID, one.ID)

	_, err = env.auditLogs.GetByID(asAdmin(admin), 987654)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
