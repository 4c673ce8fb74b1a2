package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ExerciseFilters struct {
	CourseID  *string `json:"course_id"`
	Kind      *string `json:"kind"`
	CreatedBy *string `json:"created_by"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "created_at", "title"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

type ValidationRecordFilters struct {
	ExerciseID *string    `json:"exercise_id"`
	BlockID    *string    `json:"block_id"`
	UserID     *string    `json:"user_id"`
	IsCorrect  *bool      `json:"is_correct"`
	DateFrom   *time.Time `json:"date_from"`
	DateTo     *time.Time `json:"date_to"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// ValidationStats aggregates stored outcomes for a block or exercise.
type ValidationStats struct {
	TotalAttempts   int64   `json:"total_attempts"`
	CorrectAttempts int64   `json:"correct_attempts"`
	AveragePoints   float64 `json:"average_points"`
	SuccessRate     float64 `json:"success_rate"`
}

// ===== REPOSITORY INTERFACES =====

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *models.ExerciseItem) error
	GetByID(ctx context.Context, id string) (*models.ExerciseItem, error)
	Update(ctx context.Context, exercise *models.ExerciseItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters ExerciseFilters) ([]*models.ExerciseItem, int64, error)
}

type ValidationRecordRepository interface {
	Create(ctx context.Context, record *models.ValidationRecord) error
	GetByID(ctx context.Context, id uint) (*models.ValidationRecord, error)
	List(ctx context.Context, filters ValidationRecordFilters) ([]*models.ValidationRecord, int64, error)
	GetStats(ctx context.Context, exerciseID, blockID string) (*ValidationStats, error)
	GetLatestByUser(ctx context.Context, exerciseID, blockID, userID string) (*models.ValidationRecord, error)
}

// Repository aggregates all data access behind one handle.
type Repository interface {
	Exercise() ExerciseRepository
	ValidationRecord() ValidationRecordRepository

	Ping(ctx context.Context) error
	Close() error
}

// IsNotFoundError reports whether err is the storage layer's missing-row
// condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
