package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"
	domainRepo "cleaning-service-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type feedbackRepository struct{}

func NewFeedbackRepository() domainRepo.FeedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) Create(db *gorm.DB, feedback *entity.Feedback) error {
	return db.Create(feedback).Error
}

func (r *feedbackRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Feedback, error) {
	return firstWhere[entity.Feedback](db, "id = ?", id)
}

func (r *feedbackRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Feedback, error) {
	return firstWhere[entity.Feedback](db, "appointment_id = ?", appointmentID)
}

func (r *feedbackRepository) FindAll(db *gorm.DB, scope entity.Scope, filter entity.ListFilter) ([]entity.Feedback, int64, error) {
	query := db.Model(&entity.Feedback{})

	switch {
	case scope.Nothing:
		query = query.Where("1 = 0")
	case scope.CustomerID != nil:
		query = query.Where("customer_id = ?", *scope.CustomerID)
	case scope.EmployeeID != nil:
		query = query.Where("employee_id = ?", *scope.EmployeeID)
	}

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	return paginate[entity.Feedback](query, filter.Page, filter.Limit, "created_at DESC, id ASC")
}

func (r *feedbackRepository) Update(db *gorm.DB, feedback *entity.Feedback) error {
	return db.Save(feedback).Error
}

func (r *feedbackRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Feedback{})
	return result.RowsAffected, result.Error
}

func (r *feedbackRepository) DeleteByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) (int64, error) {
	if len(appointmentIDs) == 0 {
		return 0, nil
	}
	result := db.Where("appointment_id IN ?", appointmentIDs).Delete(&entity.Feedback{})
	return result.RowsAffected, result.Error
}

func (r *feedbackRepository) DeleteByCustomerID(db *gorm.DB, customerID uuid.UUID) (int64, error) {
	result := db.Where("customer_id = ?", customerID).Delete(&entity.Feedback{})
	return result.RowsAffected, result.Error
}

func (r *feedbackRepository) UnassignEmployee(db *gorm.DB, employeeID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Feedback{}).Where("employee_id = ?", employeeID).Update("employee_id", nil)
	return result.RowsAffected, result.Error
}
