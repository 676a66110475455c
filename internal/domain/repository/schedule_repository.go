package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.Schedule) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Schedule, error)
	FindAll(db *gorm.DB, scope entity.Scope, filter entity.ListFilter) ([]entity.Schedule, int64, error)
	Update(db *gorm.DB, schedule *entity.Schedule) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByEmployeeID(db *gorm.DB, employeeID uuid.UUID) (int64, error)
}
