package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"
	domainRepo "cleaning-service-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// overlapCondition matches appointments of employees.id that are not
// cancelled and intersect [start, end). Arguments: status, end, start.
const overlapCondition = `NOT EXISTS (
	SELECT 1 FROM appointments
	WHERE appointments.employee_id = employees.id
	AND appointments.status <> ?
	AND appointments.appointment_date < ?
	AND appointments.ends_at > ?
)`

type employeeRepository struct{}

func NewEmployeeRepository() domainRepo.EmployeeRepository {
	return &employeeRepository{}
}

func (r *employeeRepository) Create(db *gorm.DB, employee *entity.Employee) error {
	return db.Create(employee).Error
}

func (r *employeeRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Employee, error) {
	return firstWhere[entity.Employee](db, "id = ?", id)
}

// FindByIDForUpdate takes a row lock on PostgreSQL. SQLite has no row
// locks; its single writer already serializes the transaction.
func (r *employeeRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Employee, error) {
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return firstWhere[entity.Employee](db, "id = ?", id)
}

func (r *employeeRepository) FindByLogin(db *gorm.DB, login string) (*entity.Employee, error) {
	return firstWhere[entity.Employee](db, "login = ?", login)
}

func (r *employeeRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Employee, int64, error) {
	query := db.Model(&entity.Employee{})
	if filter.Status != "" {
		query = query.Where("role = ?", filter.Status)
	}
	return paginate[entity.Employee](query, filter.Page, filter.Limit, "last_name ASC, first_name ASC, id ASC")
}

func (r *employeeRepository) FindAvailable(db *gorm.DB, window entity.Window) ([]entity.Employee, error) {
	var employees []entity.Employee
	err := db.Model(&entity.Employee{}).
		Where(overlapCondition, entity.AppointmentStatusCancelled, window.End, window.Start).
		Order("last_name ASC, first_name ASC, id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) Update(db *gorm.DB, employee *entity.Employee) error {
	return db.Save(employee).Error
}

func (r *employeeRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Employee{})
	return result.RowsAffected, result.Error
}
