package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"
	domainRepo "cleaning-service-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct{}

func NewCustomerRepository() domainRepo.CustomerRepository {
	return &customerRepository{}
}

func (r *customerRepository) Create(db *gorm.DB, customer *entity.Customer) error {
	return db.Create(customer).Error
}

func (r *customerRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Customer, error) {
	return firstWhere[entity.Customer](db, "id = ?", id)
}

func (r *customerRepository) FindByLogin(db *gorm.DB, login string) (*entity.Customer, error) {
	return firstWhere[entity.Customer](db, "login = ?", login)
}

func (r *customerRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Customer, int64, error) {
	return paginate[entity.Customer](db.Model(&entity.Customer{}), filter.Page, filter.Limit, "last_name ASC, first_name ASC, id ASC")
}

func (r *customerRepository) Update(db *gorm.DB, customer *entity.Customer) error {
	return db.Save(customer).Error
}

func (r *customerRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Customer{})
	return result.RowsAffected, result.Error
}
