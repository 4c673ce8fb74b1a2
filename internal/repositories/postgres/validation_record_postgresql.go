package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
)

type ValidationRecordPostgreSQL struct {
	db *gorm.DB
}

func NewValidationRecordPostgreSQL(db *gorm.DB) repositories.ValidationRecordRepository {
	return &ValidationRecordPostgreSQL{db: db}
}

func (r ValidationRecordPostgreSQL) Create(ctx context.Context, record *models.ValidationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r ValidationRecordPostgreSQL) GetByID(ctx context.Context, id uint) (*models.ValidationRecord, error) {
	var record models.ValidationRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r ValidationRecordPostgreSQL) List(ctx context.Context, filters repositories.ValidationRecordFilters) ([]*models.ValidationRecord, int64, error) {
	var records []*models.ValidationRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ValidationRecord{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r ValidationRecordPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ValidationRecordFilters) *gorm.DB {
	if filters.ExerciseID != nil {
		query = query.Where("exercise_id = ?", *filters.ExerciseID)
	}
	if filters.BlockID != nil {
		query = query.Where("block_id = ?", *filters.BlockID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.IsCorrect != nil {
		query = query.Where("is_correct = ?", *filters.IsCorrect)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}

func (r ValidationRecordPostgreSQL) GetStats(ctx context.Context, exerciseID, blockID string) (*repositories.ValidationStats, error) {
	var stats repositories.ValidationStats

	query := r.db.WithContext(ctx).Model(&models.ValidationRecord{}).
		Where("exercise_id = ?", exerciseID)
	if blockID != "" {
		query = query.Where("block_id = ?", blockID)
	}

	if err := query.Count(&stats.TotalAttempts).Error; err != nil {
		return nil, err
	}
	if err := query.Where("is_correct = ?", true).Count(&stats.CorrectAttempts).Error; err != nil {
		return nil, err
	}

	row := r.db.WithContext(ctx).Model(&models.ValidationRecord{}).
		Select("COALESCE(AVG(points_earned), 0)").
		Where("exercise_id = ?", exerciseID)
	if blockID != "" {
		row = row.Where("block_id = ?", blockID)
	}
	if err := row.Scan(&stats.AveragePoints).Error; err != nil {
		return nil, err
	}

	if stats.TotalAttempts > 0 {
		stats.SuccessRate = float64(stats.CorrectAttempts) / float64(stats.TotalAttempts)
	}
	return &stats, nil
}

func (r ValidationRecordPostgreSQL) GetLatestByUser(ctx context.Context, exerciseID, blockID, userID string) (*models.ValidationRecord, error) {
	var record models.ValidationRecord
	if err := r.db.WithContext(ctx).
		Where("exercise_id = ? AND block_id = ? AND user_id = ?", exerciseID, blockID, userID).
		Order("created_at desc").
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
