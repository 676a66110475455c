package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"
	domainRepo "cleaning-service-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) Create(db *gorm.DB, schedule *entity.Schedule) error {
	return db.Omit(clause.Associations).Create(schedule).Error
}

func (r *scheduleRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Schedule, error) {
	return firstWhere[entity.Schedule](db.Preload("Employee"), "id = ?", id)
}

func (r *scheduleRepository) FindAll(db *gorm.DB, scope entity.Scope, filter entity.ListFilter) ([]entity.Schedule, int64, error) {
	query := db.Model(&entity.Schedule{})
	if scope.Nothing {
		query = query.Where("1 = 0")
	}
	if scope.EmployeeID != nil {
		query = query.Where("employee_id = ?", *scope.EmployeeID)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	return paginate[entity.Schedule](query, filter.Page, filter.Limit, "day_of_week ASC, start_time ASC, id ASC", "Employee")
}

func (r *scheduleRepository) Update(db *gorm.DB, schedule *entity.Schedule) error {
	return db.Omit(clause.Associations).Save(schedule).Error
}

func (r *scheduleRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Schedule{})
	return result.RowsAffected, result.Error
}

func (r *scheduleRepository) DeleteByEmployeeID(db *gorm.DB, employeeID uuid.UUID) (int64, error) {
	result := db.Where("employee_id = ?", employeeID).Delete(&entity.Schedule{})
	return result.RowsAffected, result.Error
}
