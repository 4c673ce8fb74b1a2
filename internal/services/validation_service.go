package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/interactive-validation-service/internal/cache"
	"github.com/SAP-F-2025/interactive-validation-service/internal/events"
	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
	"github.com/SAP-F-2025/interactive-validation-service/internal/resolver"
	"github.com/SAP-F-2025/interactive-validation-service/internal/validator"
)

const (
	contentCacheKeyPrefix = "exercise:content:"
	contentCacheTTL       = 10 * time.Minute
)

// ===== REQUEST/RESPONSE TYPES =====

type ValidateAnswerRequest struct {
	// Kind is optional; when empty the engine infers it from the content.
	Kind       string      `json:"kind"`
	Submission interface{} `json:"submission"`
	// Persist controls whether the outcome is stored. Practice mode can
	// validate without leaving a record.
	Persist bool `json:"persist"`
}

type ValidateAnswerResponse struct {
	ExerciseID string          `json:"exercise_id"`
	BlockID    string          `json:"block_id"`
	Kind       string          `json:"kind"`
	RecordID   uint            `json:"record_id,omitempty"`
	Verdict    *models.Verdict `json:"verdict"`
}

type ValidationHistoryResponse struct {
	Records []*models.ValidationRecord `json:"records"`
	Total   int64                      `json:"total"`
	Limit   int                        `json:"limit"`
	Offset  int                        `json:"offset"`
}

// ===== SERVICE INTERFACE =====

type ValidationService interface {
	ValidateAnswer(ctx context.Context, exerciseID, blockID, userID string, req ValidateAnswerRequest) (*ValidateAnswerResponse, error)
	GetStats(ctx context.Context, exerciseID, blockID string) (*repositories.ValidationStats, error)
	GetHistory(ctx context.Context, filters repositories.ValidationRecordFilters) (*ValidationHistoryResponse, error)
	GetLatestAttempt(ctx context.Context, exerciseID, blockID, userID string) (*models.ValidationRecord, error)
	InferKind(ctx context.Context, exerciseID string) (string, error)
}

type validationService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *ServiceLogger
}

func NewValidationService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger) ValidationService {
	return &validationService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger: NewServiceLogger(logger, LogConfig{
			Service:   "validation-service",
			Component: "validation",
		}),
	}
}

// ValidateAnswer loads the exercise content, runs the evaluation engine
// against the addressed block, persists the outcome and publishes an event.
// Event and persistence failures do not discard the verdict.
func (s *validationService) ValidateAnswer(ctx context.Context, exerciseID, blockID, userID string, req ValidateAnswerRequest) (*ValidateAnswerResponse, error) {
	op := s.logger.WithOperation(ctx, "validate_answer", userID)

	content, err := s.loadContent(ctx, exerciseID)
	if err != nil {
		op.LogResult(exerciseID, "exercise", err)
		return nil, err
	}

	verdict, err := validator.Evaluate(content, blockID, req.Kind, req.Submission)
	if err != nil {
		mapped := mapEngineError(err)
		s.publishFailure(ctx, exerciseID, blockID, userID, mapped)
		op.LogResult(exerciseID, "exercise", mapped)
		return nil, mapped
	}

	kind := req.Kind
	if kind == "" {
		kind = string(validator.InferKind(content))
	}
	if parsed, ok := models.ParseBlockKind(kind); ok {
		kind = string(parsed)
	}

	resp := &ValidateAnswerResponse{
		ExerciseID: exerciseID,
		BlockID:    blockID,
		Kind:       kind,
		Verdict:    verdict,
	}

	if req.Persist {
		record, err := s.persistRecord(ctx, exerciseID, blockID, userID, kind, verdict)
		if err != nil {
			// The verdict is still valid; the caller keeps it.
			op.LogResult(exerciseID, "validation_record", err)
		} else {
			resp.RecordID = record.ID
		}
	}

	event := events.NewAnswerValidatedEvent(exerciseID, blockID, userID, kind,
		verdict.IsCorrect, verdict.PointsEarned, verdict.MaxPoints)
	if err := s.publisher.PublishValidationEvent(ctx, event); err != nil {
		// Publishing is best effort; the outcome already stands.
		op.LogResult(exerciseID, "event", err)
	}

	op.LogResult(exerciseID, "exercise", nil)
	return resp, nil
}

func (s *validationService) GetStats(ctx context.Context, exerciseID, blockID string) (*repositories.ValidationStats, error) {
	if _, err := s.loadContent(ctx, exerciseID); err != nil {
		return nil, err
	}
	stats, err := s.repo.ValidationRecord().GetStats(ctx, exerciseID, blockID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load validation stats: %v", ErrInternalError, err)
	}
	return stats, nil
}

func (s *validationService) GetHistory(ctx context.Context, filters repositories.ValidationRecordFilters) (*ValidationHistoryResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	records, total, err := s.repo.ValidationRecord().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load validation history: %v", ErrInternalError, err)
	}
	return &ValidationHistoryResponse{
		Records: records,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *validationService) GetLatestAttempt(ctx context.Context, exerciseID, blockID, userID string) (*models.ValidationRecord, error) {
	record, err := s.repo.ValidationRecord().GetLatestByUser(ctx, exerciseID, blockID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: failed to load latest attempt: %v", ErrInternalError, err)
	}
	return record, nil
}

// InferKind reports the block kind the engine would assume for a legacy
// content document with no kind tag.
func (s *validationService) InferKind(ctx context.Context, exerciseID string) (string, error) {
	content, err := s.loadContent(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	return string(validator.InferKind(content)), nil
}

// loadContent fetches the raw content document, cache first.
func (s *validationService) loadContent(ctx context.Context, exerciseID string) ([]byte, error) {
	key := contentCacheKeyPrefix + exerciseID

	var cached json.RawMessage
	if err := s.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	exercise, err := s.repo.Exercise().GetByID(ctx, exerciseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("%w: failed to load exercise %s: %v", ErrInternalError, exerciseID, err)
	}

	content := []byte(exercise.Content)
	if err := s.cache.Set(ctx, key, json.RawMessage(content), contentCacheTTL); err != nil {
		// A cold cache only costs the next lookup a database round trip.
		s.logger.LogOperation(ctx, "cache_content", "", exerciseID, "exercise", 0, err)
	}
	return content, nil
}

func (s *validationService) persistRecord(ctx context.Context, exerciseID, blockID, userID, kind string, verdict *models.Verdict) (*models.ValidationRecord, error) {
	submitted, err := json.Marshal(verdict.SubmittedAnswer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submitted answer: %w", err)
	}
	correct, err := json.Marshal(verdict.CorrectAnswer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal correct answer: %w", err)
	}
	detailed, err := json.Marshal(verdict.DetailedFeedback)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal detailed feedback: %w", err)
	}

	record := &models.ValidationRecord{
		ExerciseID:       exerciseID,
		BlockID:          blockID,
		UserID:           userID,
		Kind:             kind,
		IsCorrect:        verdict.IsCorrect,
		PointsEarned:     verdict.PointsEarned,
		MaxPoints:        verdict.MaxPoints,
		Feedback:         verdict.Feedback,
		SubmittedAnswer:  datatypes.JSON(submitted),
		CorrectAnswer:    datatypes.JSON(correct),
		DetailedFeedback: datatypes.JSON(detailed),
	}
	if err := s.repo.ValidationRecord().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist validation record: %w", err)
	}
	return record, nil
}

func (s *validationService) publishFailure(ctx context.Context, exerciseID, blockID, userID string, cause error) {
	event := events.NewValidationFailedEvent(exerciseID, blockID, userID, cause.Error())
	if err := s.publisher.PublishValidationEvent(ctx, event); err != nil {
		s.logger.LogOperation(ctx, "publish_failure_event", userID, exerciseID, "event", 0, err)
	}
}

// mapEngineError translates engine sentinels into service errors so handlers
// only ever see the service taxonomy.
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, resolver.ErrBlockNotFound):
		return fmt.Errorf("%w: %v", ErrBlockNotFound, err)
	case errors.Is(err, validator.ErrUnsupportedKind):
		return fmt.Errorf("%w: %v", ErrBlockKindUnsupported, err)
	case errors.Is(err, validator.ErrEmptySubmission):
		return fmt.Errorf("%w: %v", ErrSubmissionEmpty, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
}
