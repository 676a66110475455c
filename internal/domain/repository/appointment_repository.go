package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	// FindByID preloads customer, employee, service, payment and feedback.
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, scope entity.Scope, filter entity.ListFilter) ([]entity.Appointment, int64, error)
	// HasConflict reports whether employeeID holds a non-cancelled
	// appointment overlapping window, ignoring excludeID when set.
	HasConflict(db *gorm.DB, employeeID uuid.UUID, window entity.Window, excludeID *uuid.UUID) (bool, error)
	FindActiveByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Appointment, error)
	FindIDsByCustomerID(db *gorm.DB, customerID uuid.UUID) ([]uuid.UUID, error)
	FindIDsByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]uuid.UUID, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	UpdateWindow(db *gorm.DB, id uuid.UUID, window entity.Window) error
	UnassignEmployee(db *gorm.DB, employeeID uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByIDs(db *gorm.DB, ids []uuid.UUID) (int64, error)
}
