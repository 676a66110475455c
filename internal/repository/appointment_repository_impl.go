package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"
	domainRepo "cleaning-service-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	query := db.Preload("Customer").
		Preload("Employee").
		Preload("Service").
		Preload("Payment").
		Preload("Feedback")
	return firstWhere[entity.Appointment](query, "id = ?", id)
}

func (r *appointmentRepository) FindAll(db *gorm.DB, scope entity.Scope, filter entity.ListFilter) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{})

	switch {
	case scope.Nothing:
		query = query.Where("1 = 0")
	case scope.CustomerID != nil:
		query = query.Where("customer_id = ?", *scope.CustomerID)
	case scope.EmployeeID != nil:
		query = query.Where("employee_id = ?", *scope.EmployeeID)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	return paginate[entity.Appointment](query, filter.Page, filter.Limit, "appointment_date ASC, id ASC", "Service", "Employee", "Payment")
}

func (r *appointmentRepository) HasConflict(db *gorm.DB, employeeID uuid.UUID, window entity.Window, excludeID *uuid.UUID) (bool, error) {
	query := db.Model(&entity.Appointment{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", entity.AppointmentStatusCancelled).
		Where("appointment_date < ? AND ends_at > ?", window.End, window.Start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) FindActiveByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("service_id = ? AND status IN ?", serviceID, []entity.AppointmentStatus{
		entity.AppointmentStatusScheduled,
		entity.AppointmentStatusInProgress,
	}).Order("appointment_date ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindIDsByCustomerID(db *gorm.DB, customerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&entity.Appointment{}).Where("customer_id = ?", customerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *appointmentRepository) FindIDsByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&entity.Appointment{}).Where("service_id = ?", serviceID).Pluck("id", &ids).Error
	return ids, err
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Save(appointment).Error
}

func (r *appointmentRepository) UpdateWindow(db *gorm.DB, id uuid.UUID, window entity.Window) error {
	return db.Model(&entity.Appointment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"appointment_date": window.Start,
		"ends_at":          window.End,
	}).Error
}

func (r *appointmentRepository) UnassignEmployee(db *gorm.DB, employeeID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).Where("employee_id = ?", employeeID).Update("employee_id", nil)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteByIDs(db *gorm.DB, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
