package repository

import (
	"errors"

	"cleaning-service-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// firstWhere returns nil, nil when no row matches.
func firstWhere[T any](db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var out T
	err := db.Where(query, args...).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// paginate counts the filtered query and returns one page of it. Preloads
// are applied to the page query only.
func paginate[T any](query *gorm.DB, page, limit int, order string, preloads ...string) ([]T, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit = normalizeLimit(limit)
	offset := entity.ListFilter{Page: page, Limit: limit}.Offset()

	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var rows []T
	if err := query.Order(order).Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func normalizeLimit(limit int) int {
	if limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
