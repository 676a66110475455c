package repository

import (
	"cleaning-service-scheduler/internal/domain/entity"
	domainRepo "cleaning-service-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminRepository struct{}

func NewAdminRepository() domainRepo.AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) Create(db *gorm.DB, admin *entity.Admin) error {
	return db.Create(admin).Error
}

func (r *adminRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Admin, error) {
	return firstWhere[entity.Admin](db, "id = ?", id)
}

func (r *adminRepository) FindByLogin(db *gorm.DB, login string) (*entity.Admin, error) {
	return firstWhere[entity.Admin](db, "login = ?", login)
}

func (r *adminRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Admin, int64, error) {
	return paginate[entity.Admin](db.Model(&entity.Admin{}), filter.Page, filter.Limit, "last_name ASC, first_name ASC, id ASC")
}

func (r *adminRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Admin{}).Count(&total).Error
	return total, err
}

func (r *adminRepository) Update(db *gorm.DB, admin *entity.Admin) error {
	return db.Save(admin).Error
}

func (r *adminRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Admin{})
	return result.RowsAffected, result.Error
}
