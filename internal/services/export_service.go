package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
)

// ExportService renders stored validation outcomes as spreadsheets for
// instructors.
type ExportService interface {
	ExportValidationResults(ctx context.Context, exerciseID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *ServiceLogger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo: repo,
		logger: NewServiceLogger(logger, LogConfig{
			Service:   "validation-service",
			Component: "export",
		}),
	}
}

// ExportValidationResults builds an Excel workbook with one row per stored
// validation record for the exercise.
func (s *exportService) ExportValidationResults(ctx context.Context, exerciseID string) ([]byte, error) {
	op := s.logger.WithOperation(ctx, "export_validation_results", "")

	exercise, err := s.repo.Exercise().GetByID(ctx, exerciseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			op.LogResult(exerciseID, "exercise", ErrExerciseNotFound)
			return nil, ErrExerciseNotFound
		}
		wrapped := fmt.Errorf("%w: failed to load exercise: %v", ErrInternalError, err)
		op.LogResult(exerciseID, "exercise", wrapped)
		return nil, wrapped
	}

	filters := repositories.ValidationRecordFilters{
		ExerciseID: &exerciseID,
		Limit:      10000,
	}
	records, _, err := s.repo.ValidationRecord().List(ctx, filters)
	if err != nil {
		wrapped := fmt.Errorf("%w: failed to load validation records: %v", ErrInternalError, err)
		op.LogResult(exerciseID, "validation_record", wrapped)
		return nil, wrapped
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Record ID", "Block ID", "User ID", "Kind", "Correct", "Points Earned", "Max Points", "Feedback", "Submitted At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, record := range records {
		values := []interface{}{
			record.ID,
			record.BlockID,
			record.UserID,
			record.Kind,
			record.IsCorrect,
			record.PointsEarned,
			record.MaxPoints,
			record.Feedback,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}

	op.LogResult(exercise.ID, "export", nil)
	return buf.Bytes(), nil
}
