package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(db *gorm.DB, admin *entity.Admin) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Admin, error)
	FindByLogin(db *gorm.DB, login string) (*entity.Admin, error)
	FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Admin, int64, error)
	Count(db *gorm.DB) (int64, error)
	Update(db *gorm.DB, admin *entity.Admin) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type CustomerRepository interface {
	Create(db *gorm.DB, customer *entity.Customer) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Customer, error)
	FindByLogin(db *gorm.DB, login string) (*entity.Customer, error)
	FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Customer, int64, error)
	Update(db *gorm.DB, customer *entity.Customer) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type EmployeeRepository interface {
	Create(db *gorm.DB, employee *entity.Employee) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Employee, error)
	// FindByIDForUpdate locks the employee row until the transaction ends.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Employee, error)
	FindByLogin(db *gorm.DB, login string) (*entity.Employee, error)
	FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Employee, int64, error)
	// FindAvailable returns employees with no non-cancelled appointment
	// overlapping window, ordered by name.
	FindAvailable(db *gorm.DB, window entity.Window) ([]entity.Employee, error)
	Update(db *gorm.DB, employee *entity.Employee) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
