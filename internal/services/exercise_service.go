package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/interactive-validation-service/internal/cache"
	"github.com/SAP-F-2025/interactive-validation-service/internal/events"
	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
	"github.com/SAP-F-2025/interactive-validation-service/internal/utils"
)

// ===== REQUEST/RESPONSE TYPES =====

type CreateExerciseRequest struct {
	ID       string          `json:"id" validate:"required,max=64"`
	CourseID string          `json:"course_id" validate:"max=64"`
	Title    string          `json:"title" validate:"required,max=200"`
	Kind     string          `json:"kind" validate:"omitempty,block_kind"`
	Content  json.RawMessage `json:"content" validate:"required"`
}

type UpdateExerciseRequest struct {
	Title   *string         `json:"title" validate:"omitempty,max=200"`
	Kind    *string         `json:"kind" validate:"omitempty,block_kind"`
	Content json.RawMessage `json:"content"`
}

type ExerciseListResponse struct {
	Exercises []*models.ExerciseItem `json:"exercises"`
	Total     int64                  `json:"total"`
	Limit     int                    `json:"limit"`
	Offset    int                    `json:"offset"`
}

// ===== SERVICE INTERFACE =====

type ExerciseService interface {
	Create(ctx context.Context, userID string, req CreateExerciseRequest) (*models.ExerciseItem, error)
	GetByID(ctx context.Context, id string) (*models.ExerciseItem, error)
	Update(ctx context.Context, id, userID string, req UpdateExerciseRequest) (*models.ExerciseItem, error)
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, filters repositories.ExerciseFilters) (*ExerciseListResponse, error)
}

type exerciseService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *utils.Validator
	logger    *ServiceLogger
}

func NewExerciseService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, v *utils.Validator, logger *slog.Logger) ExerciseService {
	return &exerciseService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		validator: v,
		logger: NewServiceLogger(logger, LogConfig{
			Service:   "validation-service",
			Component: "exercise",
		}),
	}
}

func (s *exerciseService) Create(ctx context.Context, userID string, req CreateExerciseRequest) (*models.ExerciseItem, error) {
	op := s.logger.WithOperation(ctx, "create_exercise", userID)

	if err := s.validator.Validate(req); err != nil {
		op.LogResult(req.ID, "exercise", err)
		return nil, err
	}
	if !json.Valid(req.Content) {
		err := fmt.Errorf("%w: content is not valid JSON", ErrExerciseInvalidContent)
		op.LogResult(req.ID, "exercise", err)
		return nil, err
	}

	if existing, err := s.repo.Exercise().GetByID(ctx, req.ID); err == nil && existing != nil {
		err := fmt.Errorf("%w: %s", ErrExerciseDuplicateID, req.ID)
		op.LogResult(req.ID, "exercise", err)
		return nil, err
	}

	exercise := &models.ExerciseItem{
		ID:        req.ID,
		CourseID:  req.CourseID,
		Title:     req.Title,
		Kind:      req.Kind,
		CreatedBy: userID,
		Content:   datatypes.JSON(req.Content),
	}
	if err := s.repo.Exercise().Create(ctx, exercise); err != nil {
		wrapped := fmt.Errorf("%w: failed to create exercise: %v", ErrInternalError, err)
		op.LogResult(req.ID, "exercise", wrapped)
		return nil, wrapped
	}

	s.publishLifecycle(ctx, events.EventExerciseCreated, exercise, userID)
	op.LogResult(exercise.ID, "exercise", nil)
	return exercise, nil
}

func (s *exerciseService) GetByID(ctx context.Context, id string) (*models.ExerciseItem, error) {
	exercise, err := s.repo.Exercise().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("%w: failed to load exercise %s: %v", ErrInternalError, id, err)
	}
	return exercise, nil
}

func (s *exerciseService) Update(ctx context.Context, id, userID string, req UpdateExerciseRequest) (*models.ExerciseItem, error) {
	op := s.logger.WithOperation(ctx, "update_exercise", userID)

	if err := s.validator.Validate(req); err != nil {
		op.LogResult(id, "exercise", err)
		return nil, err
	}

	exercise, err := s.GetByID(ctx, id)
	if err != nil {
		op.LogResult(id, "exercise", err)
		return nil, err
	}
	if exercise.CreatedBy != "" && exercise.CreatedBy != userID {
		permErr := NewPermissionError(userID, id, "exercise", "update", "only the creator can modify an exercise")
		op.LogResult(id, "exercise", permErr)
		return nil, permErr
	}

	if req.Title != nil {
		exercise.Title = *req.Title
	}
	if req.Kind != nil {
		exercise.Kind = *req.Kind
	}
	if len(req.Content) > 0 {
		if !json.Valid(req.Content) {
			err := fmt.Errorf("%w: content is not valid JSON", ErrExerciseInvalidContent)
			op.LogResult(id, "exercise", err)
			return nil, err
		}
		exercise.Content = datatypes.JSON(req.Content)
	}

	if err := s.repo.Exercise().Update(ctx, exercise); err != nil {
		wrapped := fmt.Errorf("%w: failed to update exercise: %v", ErrInternalError, err)
		op.LogResult(id, "exercise", wrapped)
		return nil, wrapped
	}

	// Stale cached content would keep validating against the old document.
	if err := s.cache.Delete(ctx, contentCacheKeyPrefix+id); err != nil {
		op.LogResult(id, "cache", err)
	}

	s.publishLifecycle(ctx, events.EventExerciseUpdated, exercise, userID)
	op.LogResult(id, "exercise", nil)
	return exercise, nil
}

func (s *exerciseService) Delete(ctx context.Context, id, userID string) error {
	op := s.logger.WithOperation(ctx, "delete_exercise", userID)

	exercise, err := s.GetByID(ctx, id)
	if err != nil {
		op.LogResult(id, "exercise", err)
		return err
	}
	if exercise.CreatedBy != "" && exercise.CreatedBy != userID {
		permErr := NewPermissionError(userID, id, "exercise", "delete", "only the creator can delete an exercise")
		op.LogResult(id, "exercise", permErr)
		return permErr
	}

	if err := s.repo.Exercise().Delete(ctx, id); err != nil {
		wrapped := fmt.Errorf("%w: failed to delete exercise: %v", ErrInternalError, err)
		op.LogResult(id, "exercise", wrapped)
		return wrapped
	}
	if err := s.cache.Delete(ctx, contentCacheKeyPrefix+id); err != nil {
		op.LogResult(id, "cache", err)
	}

	op.LogResult(id, "exercise", nil)
	return nil
}

func (s *exerciseService) List(ctx context.Context, filters repositories.ExerciseFilters) (*ExerciseListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	exercises, total, err := s.repo.Exercise().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list exercises: %v", ErrInternalError, err)
	}
	return &ExerciseListResponse{
		Exercises: exercises,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}

func (s *exerciseService) publishLifecycle(ctx context.Context, eventType events.EventType, exercise *models.ExerciseItem, actorID string) {
	event := events.NewExerciseLifecycleEvent(eventType, exercise.ID, exercise.CourseID, exercise.Kind, actorID)
	if err := s.publisher.PublishValidationEvent(ctx, event); err != nil {
		s.logger.LogOperation(ctx, "publish_lifecycle_event", actorID, exercise.ID, "event", 0, err)
	}
}
