package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(db *gorm.DB, feedback *entity.Feedback) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Feedback, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Feedback, error)
	FindAll(db *gorm.DB, scope entity.Scope, filter entity.ListFilter) ([]entity.Feedback, int64, error)
	Update(db *gorm.DB, feedback *entity.Feedback) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) (int64, error)
	DeleteByCustomerID(db *gorm.DB, customerID uuid.UUID) (int64, error)
	UnassignEmployee(db *gorm.DB, employeeID uuid.UUID) (int64, error)
}
