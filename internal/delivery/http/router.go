package http

import (
	"net/http"

	"cleaning-service-scheduler/internal/delivery/http/handler"
	"cleaning-service-scheduler/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	adminHandler       *handler.AdminHandler
	customerHandler    *handler.CustomerHandler
	employeeHandler    *handler.EmployeeHandler
	serviceHandler     *handler.ServiceHandler
	scheduleHandler    *handler.ScheduleHandler
	appointmentHandler *handler.AppointmentHandler
	paymentHandler     *handler.PaymentHandler
	feedbackHandler    *handler.FeedbackHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

// Handlers groups the HTTP handlers so NewRouter does not take a dozen
// positional arguments.
type Handlers struct {
	Auth        *handler.AuthHandler
	Admin       *handler.AdminHandler
	Customer    *handler.CustomerHandler
	Employee    *handler.EmployeeHandler
	Service     *handler.ServiceHandler
	Schedule    *handler.ScheduleHandler
	Appointment *handler.AppointmentHandler
	Payment     *handler.PaymentHandler
	Feedback    *handler.FeedbackHandler
	AuditLog    *handler.AuditLogHandler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        handlers.Auth,
		adminHandler:       handlers.Admin,
		customerHandler:    handlers.Customer,
		employeeHandler:    handlers.Employee,
		serviceHandler:     handlers.Service,
		scheduleHandler:    handlers.Schedule,
		appointmentHandler: handlers.Appointment,
		paymentHandler:     handlers.Payment,
		feedbackHandler:    handlers.Feedback,
		auditLogHandler:    handlers.AuditLog,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

// Setup registers every route. CORS and access logging wrap the whole
// router so preflight requests and unmatched paths pass through them too.
func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/customers/register", r.authHandler.RegisterCustomer).Methods(http.MethodPost)
	auth.HandleFunc("/{role:admins|customers|employees}/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Admin registration: open until the first admin exists
	auth.Handle("/admins/register", r.authMiddleware.OptionalAuthenticate(http.HandlerFunc(r.authHandler.RegisterAdmin))).Methods(http.MethodPost)

	// Everything below requires an access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.Me).Methods(http.MethodGet)

	// Accounts
	admins := protected.PathPrefix("/admins").Subrouter()
	admins.Use(middleware.RequireAdmin)
	admins.HandleFunc("", r.adminHandler.GetAll).Methods(http.MethodGet)
	admins.HandleFunc("/{id}", r.adminHandler.GetByID).Methods(http.MethodGet)
	admins.HandleFunc("/{id}", r.adminHandler.Update).Methods(http.MethodPut)
	admins.HandleFunc("/{id}", r.adminHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/customers", r.customerHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", r.customerHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", r.customerHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{id}", r.customerHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/employees", r.employeeHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/employees", r.employeeHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{id}", r.employeeHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{id}", r.employeeHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{id}", r.employeeHandler.Delete).Methods(http.MethodDelete)

	// Catalog
	protected.HandleFunc("/services", r.serviceHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/services", r.serviceHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/services/{id}", r.serviceHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/services/{id}", r.serviceHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/services/{id}", r.serviceHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/schedules", r.scheduleHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/schedules", r.scheduleHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{id}", r.scheduleHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{id}", r.scheduleHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/schedules/{id}", r.scheduleHandler.Delete).Methods(http.MethodDelete)

	// Booking. available-employees is registered before {id} so it is not
	// parsed as an appointment ID.
	protected.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/available-employees", r.appointmentHandler.AvailableEmployees).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/payments", r.paymentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/payments", r.paymentHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{id}", r.paymentHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{id}", r.paymentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/payments/{id}", r.paymentHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/feedbacks", r.feedbackHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/feedbacks", r.feedbackHandler.GetAll).Methods(http.MethodGet)
	protected.HandleFunc("/feedbacks/{id}", r.feedbackHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/feedbacks/{id}", r.feedbackHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/feedbacks/{id}", r.feedbackHandler.Delete).Methods(http.MethodDelete)

	// Audit trail (admin only)
	auditLogs := protected.PathPrefix("/audit-logs").Subrouter()
	auditLogs.Use(middleware.RequireAdmin)
	auditLogs.HandleFunc("", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	auditLogs.HandleFunc("/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.loggingMiddleware.Handle(r.corsMiddleware.Handle(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
