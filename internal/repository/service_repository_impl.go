package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"
	domainRepo "cleaning-service-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceRepository struct{}

func NewServiceRepository() domainRepo.ServiceRepository {
	return &serviceRepository{}
}

func (r *serviceRepository) Create(db *gorm.DB, service *entity.Service) error {
	return db.Create(service).Error
}

func (r *serviceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	return firstWhere[entity.Service](db, "id = ?", id)
}

func (r *serviceRepository) FindByName(db *gorm.DB, name string) (*entity.Service, error) {
	return firstWhere[entity.Service](db, "name = ?", name)
}

func (r *serviceRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Service, int64, error) {
	return paginate[entity.Service](db.Model(&entity.Service{}), filter.Page, filter.Limit, "name ASC, id ASC")
}

func (r *serviceRepository) Update(db *gorm.DB, service *entity.Service) error {
	return db.Save(service).Error
}

func (r *serviceRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Service{})
	return result.RowsAffected, result.Error
}
