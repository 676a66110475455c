package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleaning-service-scheduler/config"
	deliveryHttp "cleaning-service-scheduler/internal/delivery/http"
	"cleaning-service-scheduler/internal/delivery/http/handler"
	"cleaning-service-scheduler/internal/delivery/http/middleware"
	"cleaning-service-scheduler/internal/infrastructure/cache"
	"cleaning-service-scheduler/internal/infrastructure/database"
	"cleaning-service-scheduler/internal/repository"
	"cleaning-service-scheduler/internal/service"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/jwt"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Log         *logrus.Logger

	localLocker *service.LocalBookingLocker
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log, err := NewLogger(cfg.App)
	if err != nil {
		return nil, err
	}
	app.Log = log
	log.Info("Configuration loaded successfully")

	db, err := OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db
	log.Infof("Database connected successfully (driver=%s)", cfg.DB.Driver)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	app.Server = app.initializeServer(cfg, db, redisClient, log)

	return app, nil
}

// NewLogger configures a JSON logrus logger at the configured level.
func NewLogger(cfg config.AppConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	return log, nil
}

// OpenDatabase connects with the configured driver and brings the schema
// up to date: SQL migrations on PostgreSQL, AutoMigrate on SQLite.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if !cfg.App.IsProduction() {
		logLevel = logger.Info
	}

	switch cfg.DB.Driver {
	case "sqlite":
		db, err := database.NewSQLiteConnection(cfg.DB.Path, logLevel)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		return db, nil
	default:
		if err := database.MigrateUp(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return database.NewPostgresConnection(cfg.DB, logLevel)
	}
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	adminRepo := repository.NewAdminRepository()
	customerRepo := repository.NewCustomerRepository()
	employeeRepo := repository.NewEmployeeRepository()
	serviceRepo := repository.NewServiceRepository()
	scheduleRepo := repository.NewScheduleRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	paymentRepo := repository.NewPaymentRepository()
	feedbackRepo := repository.NewFeedbackRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	tokenStore := service.NewRedisTokenStore(redisClient)
	catalogCache := service.NewRedisCatalogCache(redisClient, cfg.Booking.CatalogCacheTTL, log)

	var locker service.BookingLocker
	if cfg.Booking.LockBackend == "local" {
		app.localLocker = service.NewLocalBookingLocker(log)
		locker = app.localLocker
	} else {
		locker = service.NewRedisBookingLocker(redisClient, cfg.Booking.LockTTL)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, adminRepo, customerRepo, employeeRepo, auditService, jwtService, tokenStore)
	adminUsecase := usecase.NewAdminUsecase(db, log, adminRepo, auditService, tokenStore)
	customerUsecase := usecase.NewCustomerUsecase(db, log, customerRepo, appointmentRepo, paymentRepo, feedbackRepo, auditService, tokenStore)
	employeeUsecase := usecase.NewEmployeeUsecase(db, log, employeeRepo, appointmentRepo, feedbackRepo, scheduleRepo, auditService, tokenStore)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, employeeRepo, appointmentRepo, paymentRepo, feedbackRepo, auditService, catalogCache)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, scheduleRepo, employeeRepo, auditService)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, serviceRepo, employeeRepo, catalogCache)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, customerRepo, employeeRepo, serviceRepo, paymentRepo, feedbackRepo, auditService, locker, time.Now)
	paymentUsecase := usecase.NewPaymentUsecase(db, log, paymentRepo, appointmentRepo, auditService)
	feedbackUsecase := usecase.NewFeedbackUsecase(db, log, feedbackRepo, appointmentRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:        handler.NewAuthHandler(authUsecase, customValidator, log),
		Admin:       handler.NewAdminHandler(adminUsecase, customValidator, log),
		Customer:    handler.NewCustomerHandler(customerUsecase, customValidator, log),
		Employee:    handler.NewEmployeeHandler(employeeUsecase, customValidator, log),
		Service:     handler.NewServiceHandler(serviceUsecase, customValidator, log),
		Schedule:    handler.NewScheduleHandler(scheduleUsecase, customValidator, log),
		Appointment: handler.NewAppointmentHandler(appointmentUsecase, availabilityUsecase, customValidator, log),
		Payment:     handler.NewPaymentHandler(paymentUsecase, customValidator, log),
		Feedback:    handler.NewFeedbackHandler(feedbackUsecase, customValidator, log),
		AuditLog:    handler.NewAuditLogHandler(auditLogUsecase, log),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, loggingMiddleware)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.localLocker != nil {
		app.localLocker.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
