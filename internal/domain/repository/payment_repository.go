package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *entity.Payment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Payment, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error)
	// FindAll scopes through the owning appointment.
	FindAll(db *gorm.DB, scope entity.Scope, filter entity.ListFilter) ([]entity.Payment, int64, error)
	Update(db *gorm.DB, payment *entity.Payment) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) (int64, error)
}
