package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
)

type ExercisePostgreSQL struct {
	db *gorm.DB
}

func NewExercisePostgreSQL(db *gorm.DB) repositories.ExerciseRepository {
	return &ExercisePostgreSQL{db: db}
}

func (r ExercisePostgreSQL) Create(ctx context.Context, exercise *models.ExerciseItem) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

func (r ExercisePostgreSQL) GetByID(ctx context.Context, id string) (*models.ExerciseItem, error) {
	var exercise models.ExerciseItem
	if err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r ExercisePostgreSQL) Update(ctx context.Context, exercise *models.ExerciseItem) error {
	return r.db.WithContext(ctx).Save(exercise).Error
}

func (r ExercisePostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.ExerciseItem{}, "id = ?", id).Error
}

func (r ExercisePostgreSQL) List(ctx context.Context, filters repositories.ExerciseFilters) ([]*models.ExerciseItem, int64, error) {
	var exercises []*models.ExerciseItem
	var total int64

	// apply filters first
	query := r.db.WithContext(ctx).Model(&models.ExerciseItem{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = r.applyPaginationAndSort(query, filters)

	if err := query.Find(&exercises).Error; err != nil {
		return nil, 0, err
	}
	return exercises, total, nil
}

func (r ExercisePostgreSQL) applyFilters(query *gorm.DB, filters repositories.ExerciseFilters) *gorm.DB {
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.Kind != nil {
		query = query.Where("kind = ?", *filters.Kind)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	return query
}

func (r ExercisePostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.ExerciseFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "created_at", "title", "updated_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
