package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"
	domainRepo "cleaning-service-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct{}

func NewPaymentRepository() domainRepo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *paymentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Payment, error) {
	return firstWhere[entity.Payment](db, "id = ?", id)
}

func (r *paymentRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error) {
	return firstWhere[entity.Payment](db, "appointment_id = ?", appointmentID)
}

func (r *paymentRepository) FindAll(db *gorm.DB, scope entity.Scope, filter entity.ListFilter) ([]entity.Payment, int64, error) {
	query := db.Model(&entity.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id")

	switch {
	case scope.Nothing:
		query = query.Where("1 = 0")
	case scope.CustomerID != nil:
		query = query.Where("appointments.customer_id = ?", *scope.CustomerID)
	case scope.EmployeeID != nil:
		query = query.Where("appointments.employee_id = ?", *scope.EmployeeID)
	}

	if filter.Status != "" {
		query = query.Where("payments.status = ?", filter.Status)
	}

	return paginate[entity.Payment](query, filter.Page, filter.Limit, "payments.created_at DESC, payments.id ASC")
}

func (r *paymentRepository) Update(db *gorm.DB, payment *entity.Payment) error {
	return db.Save(payment).Error
}

func (r *paymentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Payment{})
	return result.RowsAffected, result.Error
}

func (r *paymentRepository) DeleteByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) (int64, error) {
	if len(appointmentIDs) == 0 {
		return 0, nil
	}
	result := db.Where("appointment_id IN ?", appointmentIDs).Delete(&entity.Payment{})
	return result.RowsAffected, result.Error
}
