package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
)

type repository struct {
	db               *gorm.DB
	exercise         repositories.ExerciseRepository
	validationRecord repositories.ValidationRecordRepository
}

// NewRepository wires all PostgreSQL-backed repositories behind the shared
// Repository handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:               db,
		exercise:         NewExercisePostgreSQL(db),
		validationRecord: NewValidationRecordPostgreSQL(db),
	}
}

func (r *repository) Exercise() repositories.ExerciseRepository {
	return r.exercise
}

func (r *repository) ValidationRecord() repositories.ValidationRecordRepository {
	return r.validationRecord
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
