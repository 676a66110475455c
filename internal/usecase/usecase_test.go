package usecase

import (
	"context"
	"os"
	"testing"
	"time"

	"cleaning-service-scheduler/config"
	"cleaning-service-scheduler/internal/domain/entity"
	repoImpl "cleaning-service-scheduler/internal/repository"
	"cleaning-service-scheduler/internal/service"
	"cleaning-service-scheduler/internal/testfixtures"
	"cleaning-service-scheduler/pkg/apperror"
	"cleaning-service-scheduler/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	passwordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testEnv struct {
	db     *gorm.DB
	clock  *testfixtures.Clock
	redis  *miniredis.Miniredis
	tokens service.TokenStore
	jwt    *jwt.JWTService

	auth         AuthUsecase
	admins       AdminUsecase
	customers    CustomerUsecase
	employees    EmployeeUsecase
	services     ServiceUsecase
	schedules    ScheduleUsecase
	availability AvailabilityUsecase
	appointments AppointmentUsecase
	payments     PaymentUsecase
	feedbacks    FeedbackUsecase
	auditLogs    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testfixtures.NewSQLiteDB(t)
	log := testfixtures.NewLogger()
	client, srv := testfixtures.NewRedis(t)
	clock := testfixtures.NewClock(time.Time{})

	adminRepo := repoImpl.NewAdminRepository()
	customerRepo := repoImpl.NewCustomerRepository()
	employeeRepo := repoImpl.NewEmployeeRepository()
	serviceRepo := repoImpl.NewServiceRepository()
	scheduleRepo := repoImpl.NewScheduleRepository()
	appointmentRepo := repoImpl.NewAppointmentRepository()
	paymentRepo := repoImpl.NewPaymentRepository()
	feedbackRepo := repoImpl.NewFeedbackRepository()
	auditLogRepo := repoImpl.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	tokenStore := service.NewRedisTokenStore(client)
	locker := service.NewRedisBookingLocker(client, 5*time.Second)
	catalogCache := service.NewRedisCatalogCache(client, time.Minute, log)
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret-key",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})

	return &testEnv{
		db:     db,
		clock:  clock,
		redis:  srv,
		tokens: tokenStore,
		jwt:    jwtService,

		auth:         NewAuthUsecase(db, log, adminRepo, customerRepo, employeeRepo, auditService, jwtService, tokenStore),
		admins:       NewAdminUsecase(db, log, adminRepo, auditService, tokenStore),
		customers:    NewCustomerUsecase(db, log, customerRepo, appointmentRepo, paymentRepo, feedbackRepo, auditService, tokenStore),
		employees:    NewEmployeeUsecase(db, log, employeeRepo, appointmentRepo, feedbackRepo, scheduleRepo, auditService, tokenStore),
		services:     NewServiceUsecase(db, log, serviceRepo, employeeRepo, appointmentRepo, paymentRepo, feedbackRepo, auditService, catalogCache),
		schedules:    NewScheduleUsecase(db, log, scheduleRepo, employeeRepo, auditService),
		availability: NewAvailabilityUsecase(db, log, serviceRepo, employeeRepo, catalogCache),
		appointments: NewAppointmentUsecase(db, log, appointmentRepo, customerRepo, employeeRepo, serviceRepo, paymentRepo, feedbackRepo, auditService, locker, clock.Now),
		payments:     NewPaymentUsecase(db, log, paymentRepo, appointmentRepo, auditService),
		feedbacks:    NewFeedbackUsecase(db, log, feedbackRepo, appointmentRepo, auditService),
		auditLogs:    NewAuditLogUsecase(db, log, auditLogRepo),
	}
}

func as(actor entity.Actor) context.Context {
	return entity.WithActor(context.Background(), actor)
}

func asAdmin(a *entity.Admin) context.Context       { return as(entity.AdminActor(a.ID)) }
func asCustomer(c *entity.Customer) context.Context { return as(entity.CustomerActor(c.ID)) }
func asEmployee(e *entity.Employee) context.Context { return as(entity.EmployeeActor(e.ID)) }

// at returns an instant on the fixture day, one day after the reference
// time, so bookings are always in the future.
func at(hour, minute int) time.Time {
	ref := testfixtures.ReferenceTime()
	return time.Date(ref.Year(), ref.Month(), ref.Day()+1, hour, minute, 0, 0, time.UTC)
}

func stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func assertInstant(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func requireKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperror.KindOf(err), "unexpected error: %v", err)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
